package game

import (
	"carbarn/internal/catalog"
)

// CarView is an owned car as the presentation layer wants it: the
// display-merged catalog entry plus where it sits and whether it has
// been fixed.
type CarView struct {
	catalog.Car
	Fixed       bool `json:"fixed"`
	WarehouseID *int `json:"warehouseId"`
}

// WarehouseView is an owned warehouse with its live inventory and the
// slots still free.
type WarehouseView struct {
	catalog.Warehouse
	Stored    []CarView `json:"stored"`
	Remaining int       `json:"remaining"`
}

// GarageView is the whole derived state for one snapshot.
type GarageView struct {
	Balance    int             `json:"balance"`
	Cars       []CarView       `json:"cars"`
	Warehouses []WarehouseView `json:"warehouses"`
	Parts      []Part          `json:"parts"`
}

func buildCarView(a *Account, carID int) (CarView, bool) {
	display, ok := a.CarDisplay(carID)
	if !ok {
		return CarView{}, false
	}
	v := CarView{Car: display}
	for _, f := range a.FixedCars {
		if f.CarID == carID {
			v.Fixed = true
			break
		}
	}
	if wid, held := a.WarehouseHolding(carID); held {
		v.WarehouseID = &wid
	}
	return v, true
}

// BuildGarageView derives the full garage from a snapshot. Cars whose
// id no longer resolves in the catalog are left out rather than
// failing the whole view.
func BuildGarageView(a *Account) GarageView {
	view := GarageView{
		Balance:    a.Balance,
		Cars:       []CarView{},
		Warehouses: []WarehouseView{},
		Parts:      append([]Part{}, a.Parts...),
	}
	for _, carID := range a.Cars {
		if v, ok := buildCarView(a, carID); ok {
			view.Cars = append(view.Cars, v)
		}
	}
	for _, wid := range a.WarehouseIDs {
		w, ok := catalog.WarehouseByID(wid)
		if !ok {
			continue
		}
		w.Inventory = nil
		wv := WarehouseView{
			Warehouse: w,
			Stored:    []CarView{},
			Remaining: RemainingCapacity(a, wid),
		}
		for _, carID := range a.WarehouseInventory[wid] {
			if v, ok := buildCarView(a, carID); ok {
				wv.Stored = append(wv.Stored, v)
			}
		}
		view.Warehouses = append(view.Warehouses, wv)
	}
	return view
}
