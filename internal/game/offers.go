package game

import (
	"strconv"
	"strings"

	"carbarn/internal/catalog"
)

// Offer is one synthetic trade proposal: a counterpart wants one of the
// player's cars and puts up a catalog car in exchange.
type Offer struct {
	ID          string      `json:"id"`
	UserName    string      `json:"userName"`
	Message     string      `json:"message"`
	CarOffered  catalog.Car `json:"carOffered"`
	CarWantedID int         `json:"carWantedId"`
	CarWanted   catalog.Car `json:"carWanted"`
}

type tradePersona struct {
	name     string
	messages [2]string
}

var tradePersonas = []tradePersona{
	{"Mike R.", [2]string{
		"Looking to switch to something more practical. Open to fair trades.",
		"Need a different size vehicle. Your car fits what I'm looking for.",
	}},
	{"Sarah K.", [2]string{
		"Trying to trade up. Let me know if you're interested.",
		"My car runs great, just want a change. Open to offers.",
	}},
	{"James T.", [2]string{
		"Selling due to relocation. Prefer trade over cash.",
		"Fair trader here. Let's work something out.",
	}},
	{"Elena V.", [2]string{
		"Looking for something with better mileage. Can add cash if needed.",
		"Want to trade for a different make. Your car caught my eye.",
	}},
	{"David L.", [2]string{
		"Downsizing. Your vehicle fits my needs better.",
		"Open to trade. Prefer something in similar condition.",
	}},
	{"Rachel M.", [2]string{
		"Need a family car. Willing to discuss price difference.",
		"Trading for something more reliable. Let's talk.",
	}},
	{"Chris P.", [2]string{
		"Just testing the waters. Make me an offer.",
		"Flexible on the trade. Can work out the difference.",
	}},
	{"Nina S.", [2]string{
		"Want to try a different brand. Your car looks well kept.",
		"Fair trade only. No lowballs.",
	}},
}

// offerRNG is a tiny LCG over a wrapping int32 state. Saved sessions
// depend on this exact recurrence, so the state width and constants
// must not change.
type offerRNG struct {
	state int32
}

func newOfferRNG(seed string) *offerRNG {
	var h int32
	for _, b := range []byte(seed) {
		h = 31*h + int32(b)
	}
	return &offerRNG{state: h}
}

// Next advances the state and maps it onto [0, 1) with seven decimal
// digits of resolution.
func (r *offerRNG) Next() float64 {
	r.state = 16807*r.state + 12345
	v := int64(r.state)
	if v < 0 {
		v = -v
	}
	return float64(v%10_000_000) / 10_000_000
}

const base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// idSuffix expands one draw into up to seven base-36 fraction digits.
func idSuffix(f float64) string {
	var b strings.Builder
	for i := 0; i < 7; i++ {
		if f == 0 {
			break
		}
		f *= 36
		d := int(f)
		f -= float64(d)
		b.WriteByte(base36Digits[d])
	}
	return b.String()
}

// offerSeed derives the generator seed from the ordered owned-car ids
// and the fixed-car count. Any change to either reshuffles the whole
// batch.
func offerSeed(a *Account) string {
	parts := make([]string, len(a.Cars))
	for i, id := range a.Cars {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",") + strconv.Itoa(len(a.FixedCars))
}

// generateOffers synthesizes the full batch for the account. Each
// iteration draws, in order: wanted index, offered index, persona
// index, message index, id suffix. An iteration whose wanted car does
// not resolve is dropped but its draws are still consumed, so later
// iterations stay aligned.
func generateOffers(a *Account) []Offer {
	if len(a.Cars) == 0 {
		return []Offer{}
	}
	pool := make([]catalog.Car, 0)
	for _, c := range catalog.Cars() {
		if !a.OwnsCar(c.ID) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return []Offer{}
	}

	rng := newOfferRNG(offerSeed(a))
	offers := make([]Offer, 0, OffersPerBatch)
	for i := 0; i < OffersPerBatch; i++ {
		wantedID := a.Cars[int(rng.Next()*float64(len(a.Cars)))]
		wanted, wantedOK := a.CarDisplay(wantedID)
		offered := pool[int(rng.Next()*float64(len(pool)))]
		persona := tradePersonas[int(rng.Next()*float64(len(tradePersonas)))]
		message := persona.messages[int(rng.Next()*float64(len(persona.messages)))]
		suffix := idSuffix(rng.Next())
		if !wantedOK {
			continue
		}

		offers = append(offers, Offer{
			ID: "offer-" + strconv.Itoa(i) + "-" + strconv.Itoa(wantedID) +
				"-" + strconv.Itoa(offered.ID) + "-" + suffix,
			UserName:    persona.name,
			Message:     message,
			CarOffered:  offered,
			CarWantedID: wantedID,
			CarWanted:   wanted,
		})
	}
	return offers
}
