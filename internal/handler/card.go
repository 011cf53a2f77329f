package handler

import (
	"time"

	"github.com/deppfellow/card-collection-api/internal/errs"
	"github.com/deppfellow/card-collection-api/internal/model"
	"github.com/deppfellow/card-collection-api/internal/server"
	"github.com/deppfellow/card-collection-api/internal/service"
	"github.com/deppfellow/card-collection-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// CardHandler serves the /cards resource.
//
// Binding and validation run in the Handle pipeline; these methods only
// see requests whose id, page and limit are already valid.
type CardHandler struct {
	Handler
	cards *service.CardService
	now   func() time.Time
}

// NewCardHandler constructs a CardHandler.
func NewCardHandler(s *server.Server, cards *service.CardService) *CardHandler {
	return &CardHandler{
		Handler: NewHandler(s),
		cards:   cards,
		now:     time.Now,
	}
}

// ListCards returns one page of cards.
func (h *CardHandler) ListCards(c echo.Context, req *model.GetCardsRequest) (model.CardPage, error) {
	return h.cards.Paginate(c.Request().Context(), req.Page(), req.Limit()), nil
}

// GetCard returns a single card.
func (h *CardHandler) GetCard(c echo.Context, req *model.CardIDRequest) (model.Card, error) {
	card, ok := h.cards.GetByID(c.Request().Context(), req.ID())
	if !ok {
		return model.Card{}, errs.CardNotFoundError(req.ID())
	}
	return card, nil
}

// CreateCard stores a new card from trimmed fields.
func (h *CardHandler) CreateCard(c echo.Context, req *model.CreateCardRequest) (model.Card, error) {
	return h.cards.Create(c.Request().Context(), req.Fields()), nil
}

// UpdateCard applies a partial update.
//
// An unknown id answers 404 before the body is looked at.
func (h *CardHandler) UpdateCard(c echo.Context, req *model.UpdateCardRequest) (model.Card, error) {
	ctx := c.Request().Context()

	if _, ok := h.cards.GetByID(ctx, req.ID()); !ok {
		return model.Card{}, errs.CardNotFoundError(req.ID())
	}

	if err := validation.AsHTTPError(req.ValidateFields()); err != nil {
		return model.Card{}, err
	}

	// The card can disappear between the lookup and the update.
	card, ok := h.cards.Update(ctx, req.ID(), req.Patch())
	if !ok {
		return model.Card{}, errs.CardNotFoundError(req.ID())
	}
	return card, nil
}

// DeleteCard removes a card and confirms it.
func (h *CardHandler) DeleteCard(c echo.Context, req *model.CardIDRequest) (model.DeleteCardResponse, error) {
	if !h.cards.Delete(c.Request().Context(), req.ID()) {
		return model.DeleteCardResponse{}, errs.CardNotFoundError(req.ID())
	}

	return model.DeleteCardResponse{
		Message:   "Card deleted successfully",
		ID:        req.ID(),
		Timestamp: h.now().UTC(),
	}, nil
}
