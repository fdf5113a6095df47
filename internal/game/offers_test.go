package game

import (
	"reflect"
	"strings"
	"testing"
)

func TestOfferSeed(t *testing.T) {
	a := StarterAccount()
	if got := offerSeed(a); got != "1,20" {
		t.Fatalf("seed got %q want %q", got, "1,20")
	}
	a.FixedCars = append(a.FixedCars, FixedCar{CarID: 1})
	if got := offerSeed(a); got != "1,21" {
		t.Fatalf("seed got %q want %q", got, "1,21")
	}
}

func TestOfferRNGDeterminism(t *testing.T) {
	r1 := newOfferRNG("1,20")
	r2 := newOfferRNG("1,20")
	for i := 0; i < 100; i++ {
		a, b := r1.Next(), r2.Next()
		if a != b {
			t.Fatalf("draw %d diverged: %v vs %v", i, a, b)
		}
		if a < 0 || a >= 1 {
			t.Fatalf("draw %d out of range: %v", i, a)
		}
	}
}

func TestIDSuffix(t *testing.T) {
	if got := idSuffix(0); got != "" {
		t.Fatalf("suffix of zero got %q want empty", got)
	}
	if got := idSuffix(0.5); got != "i" {
		t.Fatalf("suffix got %q want %q", got, "i")
	}
	if got := idSuffix(0.9999999); len(got) > 7 {
		t.Fatalf("suffix longer than seven digits: %q", got)
	}
}

func TestGenerateOffersDeterministic(t *testing.T) {
	a := StarterAccount()
	first := generateOffers(a)
	second := generateOffers(a)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same snapshot produced different batches")
	}
	if len(first) == 0 {
		t.Fatalf("expected offers for the starter account")
	}
	if len(first) > OffersPerBatch {
		t.Fatalf("batch exceeds %d offers: %d", OffersPerBatch, len(first))
	}
}

func TestGenerateOffersShape(t *testing.T) {
	a := StarterAccount()
	personaNames := map[string]bool{}
	for _, p := range tradePersonas {
		personaNames[p.name] = true
	}
	for _, o := range generateOffers(a) {
		if !a.OwnsCar(o.CarWantedID) {
			t.Fatalf("offer wants unowned car %d", o.CarWantedID)
		}
		if a.OwnsCar(o.CarOffered.ID) {
			t.Fatalf("offer puts up an already owned car %d", o.CarOffered.ID)
		}
		if !personaNames[o.UserName] {
			t.Fatalf("unknown persona %q", o.UserName)
		}
		if o.Message == "" {
			t.Fatalf("offer %s has no message", o.ID)
		}
		if !strings.HasPrefix(o.ID, "offer-") {
			t.Fatalf("unexpected id format %q", o.ID)
		}
	}
}

func TestGenerateOffersSeedSensitivity(t *testing.T) {
	a := StarterAccount()
	b := StarterAccount()
	b.FixedCars = append(b.FixedCars, FixedCar{CarID: 1, Price: 7000})
	first := generateOffers(a)
	second := generateOffers(b)
	if len(first) == 0 || len(second) == 0 {
		t.Fatalf("expected offers from both snapshots")
	}
	if reflect.DeepEqual(first, second) {
		t.Fatalf("fix count change did not reshuffle the batch")
	}
}

func TestGenerateOffersEmptyInputs(t *testing.T) {
	empty := &Account{}
	normalizeAccount(empty)
	if got := generateOffers(empty); len(got) != 0 {
		t.Fatalf("carless account produced offers: %d", len(got))
	}
}
