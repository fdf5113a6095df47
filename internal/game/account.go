package game

import (
	"carbarn/internal/catalog"
)

// Account is the single persisted record for the player. Lists are
// never nil after normalization; consumers can range over any field
// without checking.
type Account struct {
	Balance            int           `json:"balance"`
	WarehouseIDs       []int         `json:"warehouseIds"`
	Cars               []int         `json:"cars"`
	WarehouseInventory map[int][]int `json:"warehouseInventory"`
	FixedCars          []FixedCar    `json:"fixedCars"`
	Parts              []Part        `json:"parts"`
	UserName           string        `json:"userName"`
	ProfileImage       string        `json:"profileImage,omitempty"`
	Background         string        `json:"background"`
	BackgroundImage    string        `json:"backgroundImage,omitempty"`
}

// FixedCar overrides a catalog car's condition and price after a
// repair. The condition is always "excellent".
type FixedCar struct {
	CarID     int               `json:"carId"`
	Condition catalog.Condition `json:"condition"`
	Price     int               `json:"price"`
}

// Part is the salvage byproduct of a destroyed car. WarehouseID is nil
// when no warehouse held the car at salvage time.
type Part struct {
	ID          string            `json:"id"`
	CarID       int               `json:"carId"`
	Make        string            `json:"make"`
	Model       string            `json:"model"`
	Year        int               `json:"year"`
	Condition   catalog.Condition `json:"condition"`
	SellValue   int               `json:"sellValue"`
	WarehouseID *int              `json:"warehouseId"`
}

// normalizeAccount defaults every list-typed field and every inventory
// entry in place. Loading is the only shape check in the system; code
// past the store never re-validates.
func normalizeAccount(a *Account) {
	if a.WarehouseIDs == nil {
		a.WarehouseIDs = []int{}
	}
	if a.Cars == nil {
		a.Cars = []int{}
	}
	if a.WarehouseInventory == nil {
		a.WarehouseInventory = map[int][]int{}
	}
	for id, inv := range a.WarehouseInventory {
		if inv == nil {
			a.WarehouseInventory[id] = []int{}
		}
	}
	if a.FixedCars == nil {
		a.FixedCars = []FixedCar{}
	}
	if a.Parts == nil {
		a.Parts = []Part{}
	}
	if a.Background == "" {
		a.Background = "default"
	}
}

// Clone deep-copies the account so a transform can build the next
// snapshot without aliasing the current one.
func (a *Account) Clone() *Account {
	next := *a
	next.WarehouseIDs = append([]int{}, a.WarehouseIDs...)
	next.Cars = append([]int{}, a.Cars...)
	next.WarehouseInventory = make(map[int][]int, len(a.WarehouseInventory))
	for id, inv := range a.WarehouseInventory {
		next.WarehouseInventory[id] = append([]int{}, inv...)
	}
	next.FixedCars = append([]FixedCar{}, a.FixedCars...)
	next.Parts = append([]Part{}, a.Parts...)
	return &next
}

// CarDisplay merges the catalog car with the account's fix override,
// if any. Computed on every read, never stored.
func (a *Account) CarDisplay(carID int) (catalog.Car, bool) {
	base, ok := catalog.CarByID(carID)
	if !ok {
		return catalog.Car{}, false
	}
	for _, f := range a.FixedCars {
		if f.CarID == carID {
			base.Condition = f.Condition
			base.Price = f.Price
			break
		}
	}
	return base, true
}

func (a *Account) OwnsCar(carID int) bool {
	return containsInt(a.Cars, carID)
}

func (a *Account) OwnsWarehouse(warehouseID int) bool {
	return containsInt(a.WarehouseIDs, warehouseID)
}

// WarehouseHolding scans owned warehouses in order and reports which
// one stores the car, if any.
func (a *Account) WarehouseHolding(carID int) (int, bool) {
	for _, wid := range a.WarehouseIDs {
		if containsInt(a.WarehouseInventory[wid], carID) {
			return wid, true
		}
	}
	return 0, false
}

// RemainingCapacity is how many more cars the warehouse can take.
// Unknown warehouses have no capacity.
func RemainingCapacity(a *Account, warehouseID int) int {
	w, ok := catalog.WarehouseByID(warehouseID)
	if !ok {
		return 0
	}
	return w.Capacity - len(a.WarehouseInventory[warehouseID])
}

func HasCapacity(a *Account, warehouseID int) bool {
	return RemainingCapacity(a, warehouseID) > 0
}

// FirstWarehouseWithSpace returns the first candidate, in the given
// order, with a free slot.
func FirstWarehouseWithSpace(a *Account, candidateIDs []int) (int, bool) {
	for _, id := range candidateIDs {
		if HasCapacity(a, id) {
			return id, true
		}
	}
	return 0, false
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func removeInt(s []int, v int) []int {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
