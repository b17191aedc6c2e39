package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusSold   ListingStatus = "sold"
)

// Listing is an offer by one organization to sell a fixed amount of credits
// at a fixed per-credit price. Active is the only non-terminal state; a
// listing transitions once to sold and is immutable otherwise.
type Listing struct {
	ID             int32           `json:"id"`
	OrganizationID int32           `json:"organization_id"`
	CreditsAmount  decimal.Decimal `json:"credits_amount"`
	PricePerCredit decimal.Decimal `json:"price_per_credit"`
	Status         ListingStatus   `json:"status"`
	CreatedOn      time.Time       `json:"created_on"`
}

// TotalCost is the price of buying the whole listing.
func (l *Listing) TotalCost() decimal.Decimal {
	return l.CreditsAmount.Mul(l.PricePerCredit)
}
