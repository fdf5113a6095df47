package game

import (
	"errors"
	"math"

	"carbarn/internal/catalog"
)

const (
	// StarterBalance is seeded into every fresh account alongside the
	// starter warehouse and its stock.
	StarterBalance = 3000

	// OffersPerBatch is how many generator iterations one batch runs.
	// The emitted offer count can be lower when an iteration is skipped.
	OffersPerBatch = 10

	// warehouseSellDivisor discounts a warehouse buyback: selling
	// returns floor(price / 1.2) for the building itself.
	warehouseSellDivisor = 1.2
)

var (
	ErrNoAccount             = errors.New("no account exists yet")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrNoWarehouse           = errors.New("no warehouse owned yet")
	ErrCarNotFound           = errors.New("car not found in catalog")
	ErrCarAlreadyOwned       = errors.New("car already owned")
	ErrCarNotOwned           = errors.New("car not owned")
	ErrCarNotFixable         = errors.New("car cannot be fixed")
	ErrWarehouseNotFound     = errors.New("warehouse not found in catalog")
	ErrWarehouseAlreadyOwned = errors.New("warehouse already owned")
	ErrWarehouseNotOwned     = errors.New("warehouse not owned")
	ErrWarehouseFull         = errors.New("warehouse is full")
	ErrPartNotFound          = errors.New("part not found")
	ErrOfferNotFound         = errors.New("offer no longer valid")
)

var fixCosts = map[catalog.Condition]int{
	catalog.ConditionGood: 1000,
	catalog.ConditionFair: 2000,
	catalog.ConditionPoor: 4000,
}

var salvageMultipliers = map[catalog.Condition]float64{
	catalog.ConditionPoor:      1.3,
	catalog.ConditionFair:      1.4,
	catalog.ConditionGood:      1.5,
	catalog.ConditionExcellent: 2.0,
}

// FixCost returns the repair price for a displayed condition. Excellent
// cars have no defined cost and report ok=false.
func FixCost(cond catalog.Condition) (int, bool) {
	c, ok := fixCosts[cond]
	return c, ok
}

// FixedSellPrice is the override price recorded when a car is fixed:
// the displayed price plus one and a half times the repair cost. Every
// fix cost is even, so the integer halving is exact.
func FixedSellPrice(displayPrice, fixCost int) int {
	return displayPrice + fixCost*3/2
}

// SalvageValue prices the part produced by scrapping a car. Unknown
// conditions fall back to a 1x multiplier.
func SalvageValue(displayPrice int, cond catalog.Condition) int {
	mult, ok := salvageMultipliers[cond]
	if !ok {
		mult = 1
	}
	return int(math.Floor(float64(displayPrice) * mult))
}

// WarehouseSellPrice is the buyback value of the building alone,
// excluding the cars and parts liquidated with it.
func WarehouseSellPrice(price int) int {
	return int(math.Floor(float64(price) / warehouseSellDivisor))
}
