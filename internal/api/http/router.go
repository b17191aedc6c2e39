package http

import (
	"net/http"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter assembles the public API. The public subtree is signup, login
// and the approved-organizations list; everything else requires a valid
// access token, with role guards per subtree.
func NewRouter(
	tokens security.TokenManager,
	authHandler *AuthHandler,
	orgHandler *OrganizationHandler,
	commuteHandler *CommuteHandler,
	marketplaceHandler *MarketplaceHandler,
	analyticsHandler *AnalyticsHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/organizations/public", orgHandler.ListApproved).Methods(http.MethodGet)

	auth := NewAuthMiddleware(tokens)
	authed := api.NewRoute().Subrouter()
	authed.Use(auth.Handler)

	// Any authenticated user
	authed.HandleFunc("/organizations/list", orgHandler.ListApproved).Methods(http.MethodGet)
	authed.HandleFunc("/organizations/{id:[0-9]+}", orgHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/organizations/{id:[0-9]+}/balances", orgHandler.Balances).Methods(http.MethodGet)
	authed.HandleFunc("/organizations/{id:[0-9]+}/analytics", orgHandler.Analytics).Methods(http.MethodGet)
	authed.HandleFunc("/listings", marketplaceHandler.ListActive).Methods(http.MethodGet)

	// Employees
	employee := authed.NewRoute().Subrouter()
	employee.Use(RequireRole(domain.UserRoleEmployee))
	employee.HandleFunc("/organizations/{id:[0-9]+}/request", orgHandler.RequestMembership).Methods(http.MethodPost)
	employee.HandleFunc("/users/commute-distance", commuteHandler.SetCommuteDistance).Methods(http.MethodPatch)
	employee.HandleFunc("/commute-logs", commuteHandler.Create).Methods(http.MethodPost)
	employee.HandleFunc("/commute-logs", commuteHandler.List).Methods(http.MethodGet)
	employee.HandleFunc("/commute-logs/analytics", commuteHandler.Analytics).Methods(http.MethodGet)

	// Organization admins
	orgAdmin := authed.NewRoute().Subrouter()
	orgAdmin.Use(RequireRole(domain.UserRoleOrgAdmin))
	orgAdmin.HandleFunc("/organizations/{id:[0-9]+}/pending-requests", orgHandler.ListPendingRequests).Methods(http.MethodGet)
	orgAdmin.HandleFunc("/organizations/{orgId:[0-9]+}/requests/{userId:[0-9]+}/approve", orgHandler.ApproveMembership).Methods(http.MethodPost)
	orgAdmin.HandleFunc("/organizations/{orgId:[0-9]+}/requests/{userId:[0-9]+}/reject", orgHandler.RejectMembership).Methods(http.MethodPost)
	orgAdmin.HandleFunc("/listings", marketplaceHandler.CreateListing).Methods(http.MethodPost)
	orgAdmin.HandleFunc("/purchases/{id:[0-9]+}", marketplaceHandler.Purchase).Methods(http.MethodPost)
	orgAdmin.HandleFunc("/marketplace/history", marketplaceHandler.History).Methods(http.MethodGet)
	orgAdmin.HandleFunc("/analytics/organization-summary", analyticsHandler.OrganizationSummary).Methods(http.MethodGet)
	orgAdmin.HandleFunc("/analytics/marketplace", marketplaceHandler.Analytics).Methods(http.MethodGet)

	// Organization registration: org admins register their own org,
	// system admins may seed pending organizations.
	registrar := authed.NewRoute().Subrouter()
	registrar.Use(RequireRole(domain.UserRoleOrgAdmin, domain.UserRoleSystemAdmin))
	registrar.HandleFunc("/organizations", orgHandler.Create).Methods(http.MethodPost)

	// System admins
	sysAdmin := authed.NewRoute().Subrouter()
	sysAdmin.Use(RequireRole(domain.UserRoleSystemAdmin))
	sysAdmin.HandleFunc("/organizations/pending", orgHandler.ListPending).Methods(http.MethodGet)
	sysAdmin.HandleFunc("/organizations/{id:[0-9]+}/approve", orgHandler.Approve).Methods(http.MethodPatch)
	sysAdmin.HandleFunc("/organizations/{id:[0-9]+}/reject", orgHandler.Reject).Methods(http.MethodPatch)
	sysAdmin.HandleFunc("/analytics/system", analyticsHandler.SystemSummary).Methods(http.MethodGet)

	return r
}
