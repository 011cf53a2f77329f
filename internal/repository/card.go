package repository

import (
	"slices"
	"sync"
	"time"

	"github.com/deppfellow/card-collection-api/internal/model"
	"github.com/rs/zerolog"
)

// CardRepository is the in-memory card store.
//
// All mutation happens under mu so IDs stay unique and concurrent updates
// are never lost. Readers get copies and cannot reach the backing slice.
type CardRepository struct {
	mu     sync.RWMutex
	cards  []model.Card
	nextID int64
	now    func() time.Time
	logger *zerolog.Logger
}

// CardOption configures a CardRepository.
type CardOption func(*CardRepository)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) CardOption {
	return func(r *CardRepository) {
		r.now = now
	}
}

// WithLogger attaches a logger for store lifecycle messages.
func WithLogger(logger *zerolog.Logger) CardOption {
	return func(r *CardRepository) {
		r.logger = logger
	}
}

// WithSeedCards preloads cards. Zero timestamps are stamped with the
// current time, and the ID counter starts above the highest seed ID.
func WithSeedCards(seed []model.Card) CardOption {
	return func(r *CardRepository) {
		r.cards = append(r.cards, seed...)
	}
}

// SeedCards returns the sample deck the service starts with.
func SeedCards() []model.Card {
	return []model.Card{
		{ID: 171836785992, Suit: "diamonds", Value: "queen", Collection: "royal"},
		{ID: 171836785993, Suit: "hearts", Value: "king", Collection: "royal"},
		{ID: 171836785994, Suit: "clubs", Value: "ace", Collection: "classic"},
		{ID: 171836785995, Suit: "spades", Value: "jack", Collection: "classic"},
	}
}

// NewCardRepository builds an empty (or seeded) store.
func NewCardRepository(opts ...CardOption) *CardRepository {
	r := &CardRepository{
		now:    time.Now,
		nextID: 1,
	}

	for _, opt := range opts {
		opt(r)
	}

	stamp := r.now().UTC()
	for i := range r.cards {
		if r.cards[i].CreatedAt.IsZero() {
			r.cards[i].CreatedAt = stamp
		}
		if r.cards[i].UpdatedAt.IsZero() {
			r.cards[i].UpdatedAt = r.cards[i].CreatedAt
		}
		if r.cards[i].ID >= r.nextID {
			r.nextID = r.cards[i].ID + 1
		}
	}

	if r.logger != nil {
		r.logger.Info().
			Int("cards", len(r.cards)).
			Int64("next_id", r.nextID).
			Msg("card store initialized")
	}

	return r
}

// GetAll returns a snapshot of every card in insertion order.
func (r *CardRepository) GetAll() []model.Card {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.cards)
}

// GetByID returns the card with id, if any.
func (r *CardRepository) GetByID(id int64) (model.Card, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.cards[i], true
	}
	return model.Card{}, false
}

// Insert appends a new card with the next ID and both timestamps set to now.
func (r *CardRepository) Insert(fields model.CardFields) model.Card {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp := r.now().UTC()
	card := model.Card{
		ID:         r.nextID,
		Suit:       fields.Suit,
		Value:      fields.Value,
		Collection: fields.Collection,
		CreatedAt:  stamp,
		UpdatedAt:  stamp,
	}

	r.nextID++
	r.cards = append(r.cards, card)

	return card
}

// Update merges patch into the card with id and refreshes UpdatedAt.
// ID and CreatedAt never change. It reports false if no card matches.
func (r *CardRepository) Update(id int64, patch model.CardPatch) (model.Card, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Card{}, false
	}

	card := r.cards[i]
	patch.Apply(&card)

	// UpdatedAt must move forward even when the clock did not tick.
	stamp := r.now().UTC()
	if !stamp.After(card.UpdatedAt) {
		stamp = card.UpdatedAt.Add(time.Nanosecond)
	}
	card.UpdatedAt = stamp

	r.cards[i] = card
	return card, true
}

// Delete erases the card with id. It reports whether a card was removed.
func (r *CardRepository) Delete(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false
	}

	r.cards = slices.Delete(r.cards, i, i+1)
	return true
}

// Count returns the number of stored cards.
func (r *CardRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.cards)
}

// indexOf must be called with mu held.
func (r *CardRepository) indexOf(id int64) int {
	return slices.IndexFunc(r.cards, func(c model.Card) bool {
		return c.ID == id
	})
}
