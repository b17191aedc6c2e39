package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserRole string

const (
	UserRoleEmployee    UserRole = "employee"
	UserRoleOrgAdmin    UserRole = "org_admin"
	UserRoleSystemAdmin UserRole = "system_admin"
)

type MembershipStatus string

const (
	MembershipStatusPending  MembershipStatus = "pending"
	MembershipStatusApproved MembershipStatus = "approved"
	MembershipStatusRejected MembershipStatus = "rejected"
)

type User struct {
	ID           int32            `json:"id"`
	Username     string           `json:"username"`
	Name         string           `json:"name"`
	PasswordHash string           `json:"-"`
	Role         UserRole         `json:"role"`
	Status       MembershipStatus `json:"status"`
	// OrganizationID is set once the user is approved into an organization.
	OrganizationID *int32 `json:"organization_id,omitempty"`
	// OrganizationRequest holds the organization awaiting a decision.
	// Set only while Status is pending; cleared on approve/reject.
	OrganizationRequest *int32           `json:"organization_request,omitempty"`
	RejectionReason     *string          `json:"rejection_reason,omitempty"`
	CommuteDistance     *decimal.Decimal `json:"commute_distance,omitempty"` // one-way commute, miles
	CreatedOn           time.Time        `json:"created_on"`
}

// HasPendingRequestFor reports whether the user is waiting on a membership
// decision from the given organization.
func (u *User) HasPendingRequestFor(orgID int32) bool {
	return u.Status == MembershipStatusPending && u.OrganizationRequest != nil && *u.OrganizationRequest == orgID
}
