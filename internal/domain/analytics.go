package domain

import "github.com/shopspring/decimal"

// Read-side aggregates. These are derived, idempotent views computed from
// committed state; they carry no consistency guarantees of their own.

type CommuteAnalytics struct {
	TotalPoints     decimal.Decimal           `json:"total_points"`
	MethodBreakdown map[TransportMethod]int32 `json:"method_breakdown"`
	DailyAverage    decimal.Decimal           `json:"daily_average"`
}

type EmployeeStats struct {
	UserID      int32           `json:"user_id"`
	Name        string          `json:"name"`
	TotalPoints decimal.Decimal `json:"total_points"`
	LogCount    int32           `json:"log_count"`
}

type OrganizationSummary struct {
	OrganizationName   string                     `json:"organization_name"`
	TotalPoints        decimal.Decimal            `json:"total_points"`
	TotalCredits       decimal.Decimal            `json:"total_credits"`
	VirtualBalance     decimal.Decimal            `json:"virtual_balance"`
	EmployeeCount      int32                      `json:"employee_count"`
	MethodDistribution map[TransportMethod]int32  `json:"method_distribution"`
	DailyTrend         map[string]decimal.Decimal `json:"daily_trend"` // yyyy-mm-dd -> points
	EmployeeStats      []EmployeeStats            `json:"employee_stats"`
}

type MarketplaceHistory struct {
	Active           []Listing       `json:"active"`
	Sold             []Listing       `json:"sold"`
	TotalSoldCredits decimal.Decimal `json:"total_sold_credits"`
	TotalSoldValue   decimal.Decimal `json:"total_sold_value"`
}

type MonthlyTrading struct {
	Credits decimal.Decimal `json:"credits"`
	Volume  decimal.Decimal `json:"volume"`
}

// PriceStats summarizes per-credit prices across a set of listings.
type PriceStats struct {
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
	Average decimal.Decimal `json:"average"`
}

type MarketplaceAnalytics struct {
	ActiveListings   int32                     `json:"active_listings"`
	ActiveCredits    decimal.Decimal           `json:"active_credits"`
	SoldListings     int32                     `json:"sold_listings"`
	TotalSoldCredits decimal.Decimal           `json:"total_sold_credits"`
	TotalSoldValue   decimal.Decimal           `json:"total_sold_value"`
	MonthlySales     map[string]MonthlyTrading `json:"monthly_sales"` // yyyy-mm
	SoldPrices       PriceStats                `json:"sold_prices"`
}

type SystemSummary struct {
	TotalOrganizations int32                     `json:"total_organizations"`
	TotalUsers         int32                     `json:"total_users"`
	TotalCreditsTraded decimal.Decimal           `json:"total_credits_traded"`
	TotalTradingVolume decimal.Decimal           `json:"total_trading_volume"`
	UserGrowth         map[string]int32          `json:"user_growth"`         // yyyy-mm -> new users
	OrganizationGrowth map[string]int32          `json:"organization_growth"` // yyyy-mm -> new orgs
	TradingActivity    map[string]MonthlyTrading `json:"trading_activity"`    // yyyy-mm
	UserDistribution   map[UserRole]int32        `json:"user_distribution"`
	ActiveListings     int32                     `json:"active_listings"`
	CompletedTrades    int32                     `json:"completed_trades"`
}
