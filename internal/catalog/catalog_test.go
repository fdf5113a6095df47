package catalog

import "testing"

func TestCatalogIntegrity(t *testing.T) {
	seenCars := map[int]bool{}
	for _, c := range Cars() {
		if seenCars[c.ID] {
			t.Fatalf("duplicate car id %d", c.ID)
		}
		seenCars[c.ID] = true
		if c.Price <= 0 || c.Make == "" || c.Model == "" {
			t.Fatalf("car %d incomplete: %+v", c.ID, c)
		}
		switch c.Condition {
		case ConditionPoor, ConditionFair, ConditionGood, ConditionExcellent:
		default:
			t.Fatalf("car %d has unknown condition %q", c.ID, c.Condition)
		}
	}

	seenWarehouses := map[int]bool{}
	for _, w := range Warehouses() {
		if seenWarehouses[w.ID] {
			t.Fatalf("duplicate warehouse id %d", w.ID)
		}
		seenWarehouses[w.ID] = true
		if w.Capacity <= 0 || w.Price <= 0 {
			t.Fatalf("warehouse %d incomplete: %+v", w.ID, w)
		}
		if len(w.Inventory) > w.Capacity {
			t.Fatalf("warehouse %d overstocked: %d > %d", w.ID, len(w.Inventory), w.Capacity)
		}
		for _, carID := range w.Inventory {
			if !seenCars[carID] {
				t.Fatalf("warehouse %d stocks unknown car %d", w.ID, carID)
			}
		}
	}
}

func TestStarterWarehouse(t *testing.T) {
	w, ok := WarehouseByID(StarterWarehouseID)
	if !ok {
		t.Fatalf("starter warehouse missing")
	}
	if len(w.Inventory) == 0 {
		t.Fatalf("starter warehouse must ship with stock")
	}
	if len(w.Inventory) >= w.Capacity {
		t.Fatalf("starter warehouse must leave at least one free slot")
	}
}

func TestLookupsCopy(t *testing.T) {
	c1, ok := CarByID(1)
	if !ok {
		t.Fatalf("car 1 missing")
	}
	c1.Price = 1
	c2, _ := CarByID(1)
	if c2.Price == 1 {
		t.Fatalf("lookup returned shared state")
	}

	cars := Cars()
	cars[0].Price = 1
	again := Cars()
	if again[0].Price == 1 {
		t.Fatalf("Cars returned shared backing data")
	}
}
