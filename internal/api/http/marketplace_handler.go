package http

import (
	"encoding/json"
	"net/http"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/service"

	"github.com/shopspring/decimal"
)

type MarketplaceHandler struct {
	marketplaceSvc service.MarketplaceService
}

func NewMarketplaceHandler(marketplaceSvc service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaceSvc: marketplaceSvc}
}

func callerOrgID(r *http.Request) (int32, error) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		return 0, err
	}
	if claims.OrganizationID == nil {
		return 0, domain.ErrUnauthorized
	}
	return *claims.OrganizationID, nil
}

type createListingRequest struct {
	CreditsAmount  decimal.Decimal `json:"credits_amount"`
	PricePerCredit decimal.Decimal `json:"price_per_credit"`
}

func (h *MarketplaceHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	orgID, err := callerOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrValidation)
		return
	}
	listing, err := h.marketplaceSvc.CreateListing(r.Context(), orgID, req.CreditsAmount, req.PricePerCredit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, listing)
}

func (h *MarketplaceHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	listings, err := h.marketplaceSvc.ListActiveListings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *MarketplaceHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	orgID, err := callerOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	listingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.marketplaceSvc.PurchaseListing(r.Context(), listingID, orgID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Purchase successful"})
}

func (h *MarketplaceHandler) History(w http.ResponseWriter, r *http.Request) {
	orgID, err := callerOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	history, err := h.marketplaceSvc.MarketplaceHistory(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// Analytics reports the caller organization's trading statistics.
func (h *MarketplaceHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	orgID, err := callerOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	analytics, err := h.marketplaceSvc.MarketplaceAnalytics(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}
