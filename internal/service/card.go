package service

import (
	"context"
	"time"

	"github.com/deppfellow/card-collection-api/internal/logger"
	"github.com/deppfellow/card-collection-api/internal/model"
	"github.com/deppfellow/card-collection-api/internal/repository"
	"github.com/deppfellow/card-collection-api/internal/server"
	"github.com/rs/zerolog"
)

// CardService wraps the card repository with pagination and logging.
//
// It has no business rules of its own besides clamping the requested page
// into range; repository results are passed through unchanged.
type CardService struct {
	server *server.Server
	repo   *repository.CardRepository
	now    func() time.Time
}

// NewCardService builds a CardService over repo.
func NewCardService(s *server.Server, repo *repository.CardRepository) *CardService {
	return &CardService{
		server: s,
		repo:   repo,
		now:    time.Now,
	}
}

// log returns the request-scoped logger when ctx carries one.
func (s *CardService) log(ctx context.Context) *zerolog.Logger {
	return logger.FromContext(ctx, s.server.Logger)
}

// Paginate returns one page of cards.
//
// totalPages is never below 1, so an empty store still has page 1. A
// requested page outside [1, totalPages] is clamped, not rejected.
func (s *CardService) Paginate(ctx context.Context, page, limit int) model.CardPage {
	if limit < 1 {
		limit = 1
	}

	all := s.repo.GetAll()
	totalCards := len(all)

	totalPages := (totalCards + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	currentPage := min(max(page, 1), totalPages)
	if currentPage != page {
		s.log(ctx).Warn().
			Int("requested_page", page).
			Int("adjusted_page", currentPage).
			Int("total_pages", totalPages).
			Msg("page number out of range, adjusted")
	}

	start := min((currentPage-1)*limit, totalCards)
	end := min(start+limit, totalCards)
	cards := all[start:end]
	if cards == nil {
		cards = []model.Card{}
	}

	result := model.CardPage{
		TotalCards:  totalCards,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		Limit:       limit,
		Count:       len(cards),
		Cards:       cards,
		Timestamp:   s.now().UTC(),
	}

	if currentPage < totalPages {
		result.Next = &model.PageRef{Page: currentPage + 1, Limit: limit}
	}
	if currentPage > 1 {
		result.Previous = &model.PageRef{Page: currentPage - 1, Limit: limit}
	}

	s.log(ctx).Debug().
		Int("page", currentPage).
		Int("limit", limit).
		Int("count", result.Count).
		Msg("cards paginated")

	return result
}

// GetByID looks a card up by id.
func (s *CardService) GetByID(ctx context.Context, id int64) (model.Card, bool) {
	card, ok := s.repo.GetByID(id)
	if !ok {
		s.log(ctx).Debug().Int64("card_id", id).Msg("card not found")
	}
	return card, ok
}

// Create stores a new card.
func (s *CardService) Create(ctx context.Context, fields model.CardFields) model.Card {
	card := s.repo.Insert(fields)

	s.log(ctx).Info().Int64("card_id", card.ID).Msg("card created")
	return card
}

// Update applies a partial update to a card.
func (s *CardService) Update(ctx context.Context, id int64, patch model.CardPatch) (model.Card, bool) {
	card, ok := s.repo.Update(id, patch)
	if ok {
		s.log(ctx).Info().Int64("card_id", id).Msg("card updated")
	}
	return card, ok
}

// Delete removes a card.
func (s *CardService) Delete(ctx context.Context, id int64) bool {
	deleted := s.repo.Delete(id)
	if deleted {
		s.log(ctx).Info().Int64("card_id", id).Msg("card deleted")
	}
	return deleted
}

// Count returns the number of stored cards.
func (s *CardService) Count(_ context.Context) int {
	return s.repo.Count()
}
