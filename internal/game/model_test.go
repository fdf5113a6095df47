package game

import (
	"testing"

	"carbarn/internal/catalog"
)

func TestFixCost(t *testing.T) {
	tests := []struct {
		cond catalog.Condition
		want int
	}{
		{catalog.ConditionGood, 1000},
		{catalog.ConditionFair, 2000},
		{catalog.ConditionPoor, 4000},
	}
	for _, tc := range tests {
		got, ok := FixCost(tc.cond)
		if !ok || got != tc.want {
			t.Fatalf("cond=%s got=%d ok=%v want=%d", tc.cond, got, ok, tc.want)
		}
	}
	if _, ok := FixCost(catalog.ConditionExcellent); ok {
		t.Fatalf("expected no fix cost for excellent")
	}
}

func TestFixedSellPrice(t *testing.T) {
	if got := FixedSellPrice(10000, 1000); got != 11500 {
		t.Fatalf("got %d want 11500", got)
	}
	if got := FixedSellPrice(3200, 2000); got != 6200 {
		t.Fatalf("got %d want 6200", got)
	}
}

func TestSalvageValue(t *testing.T) {
	tests := []struct {
		price int
		cond  catalog.Condition
		want  int
	}{
		{10000, catalog.ConditionGood, 15000},
		{10000, catalog.ConditionExcellent, 20000},
		{1500, catalog.ConditionPoor, 1950},
		{1000, catalog.ConditionFair, 1400},
		{1000, catalog.Condition("unknown"), 1000},
	}
	for _, tc := range tests {
		if got := SalvageValue(tc.price, tc.cond); got != tc.want {
			t.Fatalf("price=%d cond=%s got=%d want=%d", tc.price, tc.cond, got, tc.want)
		}
	}
}

func TestWarehouseSellPrice(t *testing.T) {
	if got := WarehouseSellPrice(12000); got != 10000 {
		t.Fatalf("got %d want 10000", got)
	}
	if got := WarehouseSellPrice(7200); got != 6000 {
		t.Fatalf("got %d want 6000", got)
	}
}
