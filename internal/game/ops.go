package game

import (
	"carbarn/internal/catalog"
)

// Every lifecycle operation is a pure transform from the current
// snapshot to the next one. Validation runs before any field of the
// clone is touched, so an error always means "nothing happened". The
// Service wires these through Store.Update, which makes the whole
// read-validate-write step one transaction.

func applyBuyCar(cur *Account, carID, warehouseID int) (*Account, error) {
	if len(cur.WarehouseIDs) == 0 {
		return nil, ErrNoWarehouse
	}
	car, ok := catalog.CarByID(carID)
	if !ok {
		return nil, ErrCarNotFound
	}
	if cur.OwnsCar(carID) {
		return nil, ErrCarAlreadyOwned
	}
	if !cur.OwnsWarehouse(warehouseID) {
		return nil, ErrWarehouseNotOwned
	}
	if cur.Balance < car.Price {
		return nil, ErrInsufficientFunds
	}
	if !HasCapacity(cur, warehouseID) {
		return nil, ErrWarehouseFull
	}

	next := cur.Clone()
	next.Balance -= car.Price
	next.Cars = append(next.Cars, carID)
	next.WarehouseInventory[warehouseID] = append(next.WarehouseInventory[warehouseID], carID)
	return next, nil
}

func applyFixCar(cur *Account, carID int) (*Account, error) {
	if !cur.OwnsCar(carID) {
		return nil, ErrCarNotOwned
	}
	display, ok := cur.CarDisplay(carID)
	if !ok {
		return nil, ErrCarNotFound
	}
	if display.Condition == catalog.ConditionExcellent {
		return nil, ErrCarNotFixable
	}
	for _, f := range cur.FixedCars {
		if f.CarID == carID {
			return nil, ErrCarNotFixable
		}
	}
	cost, ok := FixCost(display.Condition)
	if !ok {
		return nil, ErrCarNotFixable
	}
	if cur.Balance < cost {
		return nil, ErrInsufficientFunds
	}

	next := cur.Clone()
	next.Balance -= cost
	next.FixedCars = append(next.FixedCars, FixedCar{
		CarID:     carID,
		Condition: catalog.ConditionExcellent,
		Price:     FixedSellPrice(display.Price, cost),
	})
	return next, nil
}

// applySalvageCar destroys the car and returns the created part. The
// part id is injected by the caller so the transform stays pure.
func applySalvageCar(cur *Account, carID int, partID string) (*Account, Part, error) {
	if !cur.OwnsCar(carID) {
		return nil, Part{}, ErrCarNotOwned
	}
	display, ok := cur.CarDisplay(carID)
	if !ok {
		return nil, Part{}, ErrCarNotFound
	}

	part := Part{
		ID:        partID,
		CarID:     carID,
		Make:      display.Make,
		Model:     display.Model,
		Year:      display.Year,
		Condition: display.Condition,
		SellValue: SalvageValue(display.Price, display.Condition),
	}
	// The car may legitimately sit in no warehouse; salvage proceeds
	// and the part stays untagged.
	if wid, found := cur.WarehouseHolding(carID); found {
		part.WarehouseID = &wid
	}

	next := cur.Clone()
	removeCarEverywhere(next, carID)
	next.Parts = append(next.Parts, part)
	return next, part, nil
}

func applySellCar(cur *Account, carID int) (*Account, error) {
	if !cur.OwnsCar(carID) {
		return nil, ErrCarNotOwned
	}
	display, ok := cur.CarDisplay(carID)
	if !ok {
		return nil, ErrCarNotFound
	}

	next := cur.Clone()
	next.Balance += display.Price
	removeCarEverywhere(next, carID)
	return next, nil
}

func applySellPart(cur *Account, partID string) (*Account, error) {
	idx := -1
	for i, p := range cur.Parts {
		if p.ID == partID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrPartNotFound
	}

	next := cur.Clone()
	next.Balance += next.Parts[idx].SellValue
	next.Parts = append(next.Parts[:idx], next.Parts[idx+1:]...)
	return next, nil
}

func applyBuyWarehouse(cur *Account, warehouseID int) (*Account, error) {
	w, ok := catalog.WarehouseByID(warehouseID)
	if !ok {
		return nil, ErrWarehouseNotFound
	}
	if cur.OwnsWarehouse(warehouseID) {
		return nil, ErrWarehouseAlreadyOwned
	}
	if cur.Balance < w.Price {
		return nil, ErrInsufficientFunds
	}

	next := cur.Clone()
	next.Balance -= w.Price
	next.WarehouseIDs = append(next.WarehouseIDs, warehouseID)
	next.WarehouseInventory[warehouseID] = []int{}
	return next, nil
}

// applySellWarehouse liquidates the warehouse and everything stored in
// it: the payout is the building buyback plus every contained car's
// display price plus every tagged part's sell value. Returns the
// payout alongside the next snapshot.
func applySellWarehouse(cur *Account, warehouseID int) (*Account, int, error) {
	w, ok := catalog.WarehouseByID(warehouseID)
	if !ok {
		return nil, 0, ErrWarehouseNotFound
	}
	if !cur.OwnsWarehouse(warehouseID) {
		return nil, 0, ErrWarehouseNotOwned
	}

	contained := cur.WarehouseInventory[warehouseID]
	payout := WarehouseSellPrice(w.Price)
	for _, carID := range contained {
		if display, ok := cur.CarDisplay(carID); ok {
			payout += display.Price
		}
	}
	for _, p := range cur.Parts {
		if p.WarehouseID != nil && *p.WarehouseID == warehouseID {
			payout += p.SellValue
		}
	}

	next := cur.Clone()
	next.Balance += payout
	next.WarehouseIDs = removeInt(next.WarehouseIDs, warehouseID)
	delete(next.WarehouseInventory, warehouseID)
	for _, carID := range contained {
		next.Cars = removeInt(next.Cars, carID)
		next.FixedCars = removeFixedCar(next.FixedCars, carID)
	}
	parts := next.Parts[:0]
	for _, p := range next.Parts {
		if p.WarehouseID != nil && *p.WarehouseID == warehouseID {
			continue
		}
		parts = append(parts, p)
	}
	next.Parts = parts
	return next, payout, nil
}

// applyAcceptOffer swaps the wanted car for the offered one. The price
// difference is recomputed from the current snapshot; a negative diff
// credits the balance. The destination is the warehouse holding the
// wanted car, falling back to the first owned one, and must have a
// free slot once the wanted car has left it.
func applyAcceptOffer(cur *Account, wantedID, offeredID int) (*Account, error) {
	if !cur.OwnsCar(wantedID) {
		return nil, ErrCarNotOwned
	}
	wanted, ok := cur.CarDisplay(wantedID)
	if !ok {
		return nil, ErrCarNotFound
	}
	offered, ok := catalog.CarByID(offeredID)
	if !ok {
		return nil, ErrCarNotFound
	}
	if cur.OwnsCar(offeredID) {
		return nil, ErrCarAlreadyOwned
	}

	dest, held := cur.WarehouseHolding(wantedID)
	if !held {
		if len(cur.WarehouseIDs) == 0 {
			return nil, ErrNoWarehouse
		}
		dest = cur.WarehouseIDs[0]
	}

	diff := offered.Price - wanted.Price
	if cur.Balance < diff {
		return nil, ErrInsufficientFunds
	}

	next := cur.Clone()
	removeCarEverywhere(next, wantedID)
	if !HasCapacity(next, dest) {
		return nil, ErrWarehouseFull
	}
	next.Balance -= diff
	next.Cars = append(next.Cars, offeredID)
	next.WarehouseInventory[dest] = append(next.WarehouseInventory[dest], offeredID)
	return next, nil
}

func removeCarEverywhere(a *Account, carID int) {
	a.Cars = removeInt(a.Cars, carID)
	for wid, inv := range a.WarehouseInventory {
		a.WarehouseInventory[wid] = removeInt(inv, carID)
	}
	a.FixedCars = removeFixedCar(a.FixedCars, carID)
}

func removeFixedCar(fixed []FixedCar, carID int) []FixedCar {
	out := fixed[:0]
	for _, f := range fixed {
		if f.CarID != carID {
			out = append(out, f)
		}
	}
	return out
}
