package game

import (
	"encoding/json"
	"reflect"
	"testing"

	"carbarn/internal/catalog"
)

func TestStarterAccount(t *testing.T) {
	a := StarterAccount()
	if a.Balance != StarterBalance {
		t.Fatalf("balance got %d want %d", a.Balance, StarterBalance)
	}
	if !reflect.DeepEqual(a.WarehouseIDs, []int{catalog.StarterWarehouseID}) {
		t.Fatalf("warehouseIds got %v", a.WarehouseIDs)
	}
	if !reflect.DeepEqual(a.Cars, []int{1, 2}) {
		t.Fatalf("cars got %v", a.Cars)
	}
	if !reflect.DeepEqual(a.WarehouseInventory[catalog.StarterWarehouseID], a.Cars) {
		t.Fatalf("starter inventory must mirror the seeded cars")
	}
}

func TestDecodeAccountDocMalformed(t *testing.T) {
	for _, doc := range []string{"not json", "[1,2]", `"str"`, "42"} {
		if got := decodeAccountDoc([]byte(doc)); got != nil {
			t.Fatalf("doc %q decoded to %+v, want nil", doc, got)
		}
	}
}

func TestDecodeAccountDocLenientFields(t *testing.T) {
	doc := []byte(`{"balance": 500, "cars": "oops", "warehouseIds": [22], "parts": 7}`)
	a := decodeAccountDoc(doc)
	if a == nil {
		t.Fatalf("expected a decoded account")
	}
	if a.Balance != 500 {
		t.Fatalf("balance got %d want 500", a.Balance)
	}
	if len(a.Cars) != 0 || len(a.Parts) != 0 {
		t.Fatalf("bad-shaped list fields must default to empty: %+v", a)
	}
	if !reflect.DeepEqual(a.WarehouseIDs, []int{22}) {
		t.Fatalf("warehouseIds got %v", a.WarehouseIDs)
	}
	if a.Background != "default" {
		t.Fatalf("background got %q want default", a.Background)
	}
}

func TestMergeAccountDoc(t *testing.T) {
	a := StarterAccount()
	patch := map[string]json.RawMessage{
		"balance":  json.RawMessage("9999"),
		"userName": json.RawMessage(`"garage rat"`),
	}
	next, err := mergeAccountDoc(a, patch)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if next.Balance != 9999 || next.UserName != "garage rat" {
		t.Fatalf("patched fields not applied: %+v", next)
	}
	if !reflect.DeepEqual(next.Cars, a.Cars) {
		t.Fatalf("unpatched fields drifted: %v", next.Cars)
	}

	// A list field arriving in a bad shape defaults to empty instead of
	// failing the merge.
	bad := map[string]json.RawMessage{"cars": json.RawMessage(`"oops"`)}
	next, err = mergeAccountDoc(a, bad)
	if err != nil {
		t.Fatalf("merge with bad shape: %v", err)
	}
	if len(next.Cars) != 0 {
		t.Fatalf("bad-shaped cars must default to empty, got %v", next.Cars)
	}
	if next.Balance != a.Balance {
		t.Fatalf("balance drifted on bad-shape merge: %d", next.Balance)
	}
}

func TestAccountDocRoundTrip(t *testing.T) {
	a := StarterAccount()
	a.FixedCars = append(a.FixedCars, FixedCar{CarID: 1, Condition: catalog.ConditionExcellent, Price: 7000})
	wid := catalog.StarterWarehouseID
	a.Parts = append(a.Parts, Part{ID: "p1", CarID: 2, Make: "Honda", Model: "Civic", Year: 2007, Condition: catalog.ConditionFair, SellValue: 4480, WarehouseID: &wid})

	doc, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back := decodeAccountDoc(doc)
	if back == nil {
		t.Fatalf("round trip decoded to nil")
	}
	if !reflect.DeepEqual(a, back) {
		t.Fatalf("round trip drifted:\n have %+v\n want %+v", back, a)
	}
}

func TestPartJSONNullWarehouse(t *testing.T) {
	p := Part{ID: "p1", CarID: 1}
	doc, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(doc, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(raw["warehouseId"]) != "null" {
		t.Fatalf("warehouseId got %s want null", raw["warehouseId"])
	}
}
