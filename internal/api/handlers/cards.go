package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/tcg-analytics/internal/upstream"
)

// CardLookup resolves a card ID into the merged pricing document.
type CardLookup interface {
	Lookup(ctx context.Context, cardID string) (map[string]any, error)
}

// CardsHandler serves card lookups.
type CardsHandler struct {
	lookup CardLookup
}

// NewCardsHandler creates a new CardsHandler.
func NewCardsHandler(lookup CardLookup) *CardsHandler {
	return &CardsHandler{lookup: lookup}
}

// GetCardInput is the path parameter of the card endpoint.
type GetCardInput struct {
	CardID string `path:"cardId" doc:"TCGPlayer ID of the card" example:"12345"`
}

// GetCardOutput is the JustTCG document, optionally carrying ebay_data.
type GetCardOutput struct {
	Body map[string]any
}

// GetCard returns pricing for one card enriched with eBay listings when
// available. A missing JustTCG key is a 400; any other pricing failure is a
// 500. eBay problems never change the status.
func (h *CardsHandler) GetCard(ctx context.Context, input *GetCardInput) (*GetCardOutput, error) {
	payload, err := h.lookup.Lookup(ctx, input.CardID)
	if err != nil {
		if upstream.IsNotConfigured(err) {
			return nil, huma.Error400BadRequest("Configuration error: " + err.Error())
		}
		return nil, huma.Error500InternalServerError(
			"Failed to retrieve card information: " + err.Error(),
		)
	}

	return &GetCardOutput{Body: payload}, nil
}

// RegisterCardRoutes registers the card endpoint with the Huma API.
func RegisterCardRoutes(api huma.API, h *CardsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-card",
		Method:      http.MethodGet,
		Path:        "/api/v1/cards/{cardId}",
		Summary:     "Get card pricing",
		Description: "Looks up a card on JustTCG and attaches current eBay listings " +
			"under ebay_data when any are found.",
		Tags:   []string{"cards"},
		Errors: []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.GetCard)
}
