package utils

import (
	"greencommute-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// PointsPrecision is the minor-unit precision the ledger works in.
const PointsPrecision = 2

// methodMultipliers maps each transport method to its per-mile point
// multiplier. Zero-emission methods score highest; car-based methods still
// earn for sharing or lower emissions.
var methodMultipliers = map[domain.TransportMethod]decimal.Decimal{
	domain.TransportMethodWalk:            decimal.NewFromInt(3),
	domain.TransportMethodBicycle:         decimal.NewFromInt(3),
	domain.TransportMethodPublicTransit:   decimal.NewFromInt(2),
	domain.TransportMethodCarpool:         decimal.RequireFromString("1.5"),
	domain.TransportMethodElectricVehicle: decimal.NewFromInt(1),
	domain.TransportMethodHybridVehicle:   decimal.RequireFromString("0.5"),
}

// MethodMultiplier returns the per-mile multiplier for a transport method.
func MethodMultiplier(method domain.TransportMethod) (decimal.Decimal, error) {
	m, ok := methodMultipliers[method]
	if !ok {
		return decimal.Zero, domain.ErrUnknownMethod
	}
	return m, nil
}

// CalculateCommutePoints converts a commute into a point value:
// distance * multiplier(method), rounded to the ledger precision.
// Pure; identical input always yields identical output.
func CalculateCommutePoints(distance decimal.Decimal, method domain.TransportMethod) (decimal.Decimal, error) {
	m, err := MethodMultiplier(method)
	if err != nil {
		return decimal.Zero, err
	}
	if distance.Sign() <= 0 {
		return decimal.Zero, domain.ErrValidation
	}
	return distance.Mul(m).Round(PointsPrecision), nil
}
