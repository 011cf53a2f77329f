package model

import (
	"strings"

	"github.com/deppfellow/card-collection-api/internal/errs"
	"github.com/deppfellow/card-collection-api/internal/validation"
)

// GetCardsRequest carries the raw pagination query.
//
// Values stay strings so a malformed number is reported as a validation
// message instead of a bind failure.
type GetCardsRequest struct {
	RawPage  string `query:"page" json:"-"`
	RawLimit string `query:"limit" json:"-"`

	params validation.PageParams
}

func (r *GetCardsRequest) Validate() error {
	params, result := validation.ValidatePaginationParams(r.RawPage, r.RawLimit)
	if !result.Valid {
		return result.Errors
	}

	r.params = params
	return nil
}

// Page is the validated page number.
func (r *GetCardsRequest) Page() int { return r.params.Page }

// Limit is the validated page size.
func (r *GetCardsRequest) Limit() int { return r.params.Limit }

// CardIDRequest is the payload of every /cards/:id route without a body.
type CardIDRequest struct {
	RawID string `param:"id" json:"-"`

	id int64
}

func (r *CardIDRequest) Validate() error {
	id, result := validation.ValidateCardID(r.RawID)
	if result.Unknown {
		return errs.UnknownCardIDError(strings.TrimSpace(r.RawID))
	}
	if !result.Valid {
		return validation.CustomValidationErrors{{Field: "id", Message: result.Error}}
	}

	r.id = id
	return nil
}

// ID is the validated card id.
func (r *CardIDRequest) ID() int64 { return r.id }

// CreateCardRequest is the body of POST /cards.
type CreateCardRequest struct {
	validation.CardData
}

func (r *CreateCardRequest) Validate() error {
	if result := validation.ValidateCardData(r.CardData, true); !result.Valid {
		return result.Errors
	}
	return nil
}

// Fields returns the trimmed card fields. Call after Validate.
func (r *CreateCardRequest) Fields() CardFields {
	suit, _ := r.StringValue("suit")
	value, _ := r.StringValue("value")
	collection, _ := r.StringValue("collection")

	return CardFields{
		Suit:       suit,
		Value:      value,
		Collection: collection,
	}
}

// UpdateCardRequest is PUT /cards/:id.
//
// Validate only checks the id: the body is validated by ValidateFields
// once the card is known to exist, so an unknown id answers 404 first.
type UpdateCardRequest struct {
	CardIDRequest
	validation.CardData
}

func (r *UpdateCardRequest) Validate() error {
	return r.CardIDRequest.Validate()
}

// ValidateFields checks the supplied body fields.
func (r *UpdateCardRequest) ValidateFields() error {
	if result := validation.ValidateCardData(r.CardData, false); !result.Valid {
		return result.Errors
	}
	return nil
}

// Patch returns the trimmed supplied fields. Call after ValidateFields.
func (r *UpdateCardRequest) Patch() CardPatch {
	var patch CardPatch

	if v, ok := r.StringValue("suit"); ok {
		patch.Suit = &v
	}
	if v, ok := r.StringValue("value"); ok {
		patch.Value = &v
	}
	if v, ok := r.StringValue("collection"); ok {
		patch.Collection = &v
	}

	return patch
}
