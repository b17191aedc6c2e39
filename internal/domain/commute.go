package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransportMethod string

const (
	TransportMethodWalk            TransportMethod = "walk"
	TransportMethodBicycle         TransportMethod = "bicycle"
	TransportMethodPublicTransit   TransportMethod = "public_transit"
	TransportMethodCarpool         TransportMethod = "carpool"
	TransportMethodElectricVehicle TransportMethod = "electric_vehicle"
	TransportMethodHybridVehicle   TransportMethod = "hybrid_vehicle"
)

// CommuteLog records one sustainable commute. At most one log exists per
// user per calendar day; PointsEarned is computed at creation and never
// changes afterwards.
type CommuteLog struct {
	ID           int32           `json:"id"`
	UserID       int32           `json:"user_id"`
	OrgID        int32           `json:"org_id"`
	Date         time.Time       `json:"date"` // calendar day, time part zero
	Method       TransportMethod `json:"method"`
	PointsEarned decimal.Decimal `json:"points_earned"`
	CreatedOn    time.Time       `json:"created_on"`
}
