// Package model holds the card entity, the pagination envelope and the
// request/response payloads exchanged with the HTTP layer.
package model

import "time"

// Card is the only resource of the API.
//
// ID is assigned by the store and never changes. CreatedAt is set once,
// UpdatedAt on every successful update.
type Card struct {
	ID         int64     `json:"id"`
	Suit       string    `json:"suit"`
	Value      string    `json:"value"`
	Collection string    `json:"collection"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CardFields are the writable fields of a new card.
type CardFields struct {
	Suit       string
	Value      string
	Collection string
}

// CardPatch is a partial update. A nil field is left unchanged.
type CardPatch struct {
	Suit       *string
	Value      *string
	Collection *string
}

// Apply merges the supplied fields into card.
func (p CardPatch) Apply(card *Card) {
	if p.Suit != nil {
		card.Suit = *p.Suit
	}
	if p.Value != nil {
		card.Value = *p.Value
	}
	if p.Collection != nil {
		card.Collection = *p.Collection
	}
}

// PageRef points at a neighbouring page.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// CardPage is the paginated envelope returned by GET /cards.
//
// Next and Previous marshal as null when there is no such page.
type CardPage struct {
	TotalCards  int       `json:"totalCards"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	Limit       int       `json:"limit"`
	Count       int       `json:"count"`
	Cards       []Card    `json:"cards"`
	Next        *PageRef  `json:"next"`
	Previous    *PageRef  `json:"previous"`
	Timestamp   time.Time `json:"timestamp"`
}

// DeleteCardResponse confirms a removal.
type DeleteCardResponse struct {
	Message   string    `json:"message"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// ResultCount is the number of cards on the page.
func (p CardPage) ResultCount() int { return p.Count }
