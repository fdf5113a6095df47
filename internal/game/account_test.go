package game

import (
	"testing"

	"carbarn/internal/catalog"
)

func TestNormalizeAccountDefaults(t *testing.T) {
	a := &Account{WarehouseInventory: map[int][]int{22: nil}}
	normalizeAccount(a)
	if a.WarehouseIDs == nil || a.Cars == nil || a.FixedCars == nil || a.Parts == nil {
		t.Fatalf("expected all list fields non-nil: %+v", a)
	}
	if a.WarehouseInventory[22] == nil {
		t.Fatalf("expected nil inventory entry to default to empty")
	}
	if a.Background != "default" {
		t.Fatalf("expected default background, got %q", a.Background)
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := StarterAccount()
	c := a.Clone()
	c.Balance = 1
	c.Cars = append(c.Cars, 99)
	c.WarehouseInventory[catalog.StarterWarehouseID][0] = 99
	c.FixedCars = append(c.FixedCars, FixedCar{CarID: 1})
	if a.Balance == 1 || len(a.Cars) == len(c.Cars) {
		t.Fatalf("clone aliases scalar or car list")
	}
	if a.WarehouseInventory[catalog.StarterWarehouseID][0] == 99 {
		t.Fatalf("clone aliases inventory slice")
	}
	if len(a.FixedCars) != 0 {
		t.Fatalf("clone aliases fixed car list")
	}
}

func TestCarDisplayMergesFixOverride(t *testing.T) {
	a := StarterAccount()
	base, ok := a.CarDisplay(1)
	if !ok {
		t.Fatalf("expected car 1 to resolve")
	}
	if base.Condition != catalog.ConditionPoor || base.Price != 1500 {
		t.Fatalf("unexpected base display: %+v", base)
	}

	a.FixedCars = append(a.FixedCars, FixedCar{CarID: 1, Condition: catalog.ConditionExcellent, Price: 7000})
	fixed, ok := a.CarDisplay(1)
	if !ok {
		t.Fatalf("expected car 1 to resolve after fix")
	}
	if fixed.Condition != catalog.ConditionExcellent || fixed.Price != 7000 {
		t.Fatalf("expected fix override, got %+v", fixed)
	}
	if fixed.Make != base.Make || fixed.Year != base.Year {
		t.Fatalf("fix override must not touch identity fields")
	}
}

func TestWarehouseHoldingScansOwnedOrder(t *testing.T) {
	a := &Account{
		WarehouseIDs: []int{23, 22},
		Cars:         []int{1},
		WarehouseInventory: map[int][]int{
			22: {1},
			23: {},
		},
	}
	normalizeAccount(a)
	wid, ok := a.WarehouseHolding(1)
	if !ok || wid != 22 {
		t.Fatalf("got wid=%d ok=%v want 22", wid, ok)
	}
	if _, ok := a.WarehouseHolding(5); ok {
		t.Fatalf("expected unheld car to report no warehouse")
	}
}

func TestRemainingCapacity(t *testing.T) {
	a := StarterAccount()
	// Starter warehouse holds 2 of 3 slots.
	if got := RemainingCapacity(a, catalog.StarterWarehouseID); got != 1 {
		t.Fatalf("got %d want 1", got)
	}
	if !HasCapacity(a, catalog.StarterWarehouseID) {
		t.Fatalf("expected free slot")
	}
	if got := RemainingCapacity(a, 999); got != 0 {
		t.Fatalf("unknown warehouse must have zero capacity, got %d", got)
	}
}

func TestFirstWarehouseWithSpace(t *testing.T) {
	a := &Account{
		WarehouseIDs: []int{22, 23},
		WarehouseInventory: map[int][]int{
			22: {1, 2, 3},
			23: {},
		},
	}
	normalizeAccount(a)
	id, ok := FirstWarehouseWithSpace(a, a.WarehouseIDs)
	if !ok || id != 23 {
		t.Fatalf("got id=%d ok=%v want 23", id, ok)
	}
	a.WarehouseInventory[23] = []int{4, 5, 6, 7, 8, 9}
	if _, ok := FirstWarehouseWithSpace(a, a.WarehouseIDs); ok {
		t.Fatalf("expected no space anywhere")
	}
}
