package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrganizationStatus string

const (
	OrganizationStatusPending  OrganizationStatus = "pending"
	OrganizationStatusApproved OrganizationStatus = "approved"
	OrganizationStatusRejected OrganizationStatus = "rejected"
)

type Organization struct {
	ID              int32              `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Status          OrganizationStatus `json:"status"`
	RejectionReason *string            `json:"rejection_reason,omitempty"`
	// TotalCredits and VirtualBalance are the ledger fields. Both are
	// non-negative at every observable point; only the ledger mutates them.
	TotalCredits   decimal.Decimal `json:"total_credits"`
	VirtualBalance decimal.Decimal `json:"virtual_balance"`
	CreatedOn      time.Time       `json:"created_on"`
}

// InitialVirtualBalance is granted to every organization at creation.
var InitialVirtualBalance = decimal.NewFromInt(1000)
