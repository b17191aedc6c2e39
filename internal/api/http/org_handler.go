package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type OrganizationHandler struct {
	orgSvc        service.OrganizationService
	membershipSvc service.MembershipService
	ledgerSvc     service.LedgerService
	analyticsSvc  service.AnalyticsService
}

func NewOrganizationHandler(
	orgSvc service.OrganizationService,
	membershipSvc service.MembershipService,
	ledgerSvc service.LedgerService,
	analyticsSvc service.AnalyticsService,
) *OrganizationHandler {
	return &OrganizationHandler{
		orgSvc:        orgSvc,
		membershipSvc: membershipSvc,
		ledgerSvc:     ledgerSvc,
		analyticsSvc:  analyticsSvc,
	}
}

func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, domain.ErrValidation
	}
	return int32(id), nil
}

// requireOwnOrg ensures the caller administers the organization in the path.
func requireOwnOrg(r *http.Request, orgID int32) error {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		return err
	}
	if claims.OrganizationID == nil || *claims.OrganizationID != orgID {
		return domain.ErrUnauthorized
	}
	return nil
}

type createOrgRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req createOrgRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrValidation)
		return
	}
	org, err := h.orgSvc.RegisterOrganization(r.Context(), claims.UserID, req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

func (h *OrganizationHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgSvc.ListApproved(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (h *OrganizationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgSvc.ListPending(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	org, err := h.orgSvc.GetOrganization(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.orgSvc.ApproveOrganization(r.Context(), orgID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *OrganizationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req rejectRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if err := h.orgSvc.RejectOrganization(r.Context(), orgID, req.Reason); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

// RequestMembership lets an employee ask to join an approved organization.
func (h *OrganizationHandler) RequestMembership(w http.ResponseWriter, r *http.Request) {
	claims, err := ClaimsFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	orgID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.membershipSvc.RequestMembership(r.Context(), claims.UserID, orgID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *OrganizationHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := requireOwnOrg(r, orgID); err != nil {
		writeError(w, r, err)
		return
	}
	users, err := h.membershipSvc.ListPendingRequests(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *OrganizationHandler) ApproveMembership(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := requireOwnOrg(r, orgID); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.membershipSvc.ApproveMembership(r.Context(), orgID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *OrganizationHandler) RejectMembership(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "orgId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := requireOwnOrg(r, orgID); err != nil {
		writeError(w, r, err)
		return
	}
	var req rejectRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if err := h.membershipSvc.RejectMembership(r.Context(), orgID, userID, req.Reason); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

type balancesResponse struct {
	TotalCredits   decimal.Decimal `json:"total_credits"`
	VirtualBalance decimal.Decimal `json:"virtual_balance"`
}

func (h *OrganizationHandler) Balances(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	credits, balance, err := h.ledgerSvc.GetBalances(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balancesResponse{TotalCredits: credits, VirtualBalance: balance})
}

func (h *OrganizationHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	summary, err := h.analyticsSvc.OrganizationSummary(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
