package http

import (
	"encoding/json"
	"net/http"
	"time"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/service"

	"github.com/shopspring/decimal"
)

type CommuteHandler struct {
	commuteSvc service.CommuteService
}

func NewCommuteHandler(commuteSvc service.CommuteService) *CommuteHandler {
	return &CommuteHandler{commuteSvc: commuteSvc}
}

type setDistanceRequest struct {
	CommuteDistance decimal.Decimal `json:"commute_distance"`
}

func (h *CommuteHandler) SetCommuteDistance(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req setDistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrValidation)
		return
	}
	if err := h.commuteSvc.SetCommuteDistance(r.Context(), claims.UserID, req.CommuteDistance); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

type createCommuteRequest struct {
	Date   string                 `json:"date"` // yyyy-mm-dd, defaults to today
	Method domain.TransportMethod `json:"method"`
}

func (h *CommuteHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req createCommuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrValidation)
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, r, domain.ErrValidation)
			return
		}
	}

	log, err := h.commuteSvc.RecordCommute(r.Context(), claims.UserID, date, req.Method)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

func (h *CommuteHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	logs, err := h.commuteSvc.ListUserCommutes(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

type commuteAnalyticsResponse struct {
	Logs      []domain.CommuteLog      `json:"logs"`
	Analytics *domain.CommuteAnalytics `json:"analytics"`
}

func (h *CommuteHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	logs, err := h.commuteSvc.ListUserCommutes(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	analytics, err := h.commuteSvc.CommuteAnalytics(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, commuteAnalyticsResponse{Logs: logs, Analytics: analytics})
}
