package game

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Service runs the game rules on top of the Store. It also owns the
// session-scoped set of dismissed offer ids, which is deliberately not
// persisted: a restart can resurface declined offers as long as the
// owned-car set has not changed.
type Service struct {
	store *Store
	log   *slog.Logger

	mu        sync.Mutex
	dismissed map[string]bool
}

func NewService(store *Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     store,
		log:       logger,
		dismissed: map[string]bool{},
	}
}

func (s *Service) Store() *Store { return s.store }

// Account returns the current snapshot, ErrNoAccount when none exists.
func (s *Service) Account(ctx context.Context) (*Account, error) {
	a, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNoAccount
	}
	return a, nil
}

// EnsureAccount returns the existing account or seeds the starter one.
func (s *Service) EnsureAccount(ctx context.Context) (*Account, error) {
	return s.store.Create(ctx, false)
}

// ResetAccount discards all progress and reseeds the starter account.
func (s *Service) ResetAccount(ctx context.Context) (*Account, error) {
	a, err := s.store.Create(ctx, true)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.dismissed = map[string]bool{}
	s.mu.Unlock()
	s.log.Info("account reset", "balance", a.Balance)
	return a, nil
}

func (s *Service) DeleteAccount(ctx context.Context) error {
	if err := s.store.Delete(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.dismissed = map[string]bool{}
	s.mu.Unlock()
	return nil
}

// ProfileInput carries optional profile fields. Nil means unchanged;
// an empty string clears the field.
type ProfileInput struct {
	UserName     *string
	ProfileImage *string
}

func (in ProfileInput) patch() (map[string]json.RawMessage, error) {
	p := map[string]json.RawMessage{}
	if in.UserName != nil {
		raw, err := json.Marshal(*in.UserName)
		if err != nil {
			return nil, err
		}
		p["userName"] = raw
	}
	if in.ProfileImage != nil {
		raw, err := json.Marshal(*in.ProfileImage)
		if err != nil {
			return nil, err
		}
		p["profileImage"] = raw
	}
	return p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, in ProfileInput) (*Account, error) {
	p, err := in.patch()
	if err != nil {
		return nil, err
	}
	return s.store.Replace(ctx, p)
}

// BackgroundInput works like ProfileInput for the two background fields.
type BackgroundInput struct {
	Background      *string
	BackgroundImage *string
}

// patch builds the replace document. Picking a preset without an
// explicit image clears any custom image along with it, so a stale
// upload never shadows the chosen preset.
func (in BackgroundInput) patch() (map[string]json.RawMessage, error) {
	p := map[string]json.RawMessage{}
	if in.Background != nil {
		raw, err := json.Marshal(*in.Background)
		if err != nil {
			return nil, err
		}
		p["background"] = raw
		if in.BackgroundImage == nil {
			p["backgroundImage"] = json.RawMessage("null")
		}
	}
	if in.BackgroundImage != nil {
		raw, err := json.Marshal(*in.BackgroundImage)
		if err != nil {
			return nil, err
		}
		p["backgroundImage"] = raw
	}
	return p, nil
}

func (s *Service) SetBackground(ctx context.Context, in BackgroundInput) (*Account, error) {
	p, err := in.patch()
	if err != nil {
		return nil, err
	}
	return s.store.Replace(ctx, p)
}

// BuyCar purchases a catalog car into the given warehouse. A zero
// warehouse id picks the first owned warehouse with a free slot.
func (s *Service) BuyCar(ctx context.Context, carID, warehouseID int) (*Account, error) {
	next, err := s.store.Update(ctx, func(cur *Account) (*Account, error) {
		dest := warehouseID
		if dest <= 0 {
			if len(cur.WarehouseIDs) == 0 {
				return nil, ErrNoWarehouse
			}
			picked, ok := FirstWarehouseWithSpace(cur, cur.WarehouseIDs)
			if !ok {
				return nil, ErrWarehouseFull
			}
			dest = picked
		}
		return applyBuyCar(cur, carID, dest)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("car bought", "car", carID, "balance", next.Balance)
	return next, nil
}

func (s *Service) FixCar(ctx context.Context, carID int) (*Account, error) {
	next, err := s.store.Update(ctx, func(cur *Account) (*Account, error) {
		return applyFixCar(cur, carID)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("car fixed", "car", carID, "balance", next.Balance)
	return next, nil
}

// SalvageCar scraps the car into a part. Returns the new snapshot and
// the created part.
func (s *Service) SalvageCar(ctx context.Context, carID int) (*Account, Part, error) {
	var created Part
	next, err := s.store.Update(ctx, func(cur *Account) (*Account, error) {
		n, part, err := applySalvageCar(cur, carID, uuid.NewString())
		if err != nil {
			return nil, err
		}
		created = part
		return n, nil
	})
	if err != nil {
		return nil, Part{}, err
	}
	s.log.Info("car salvaged", "car", carID, "part", created.ID, "value", created.SellValue)
	return next, created, nil
}

func (s *Service) SellCar(ctx context.Context, carID int) (*Account, error) {
	next, err := s.store.Update(ctx, func(cur *Account) (*Account, error) {
		return applySellCar(cur, carID)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("car sold", "car", carID, "balance", next.Balance)
	return next, nil
}

func (s *Service) SellPart(ctx context.Context, partID string) (*Account, error) {
	next, err := s.store.Update(ctx, func(cur *Account) (*Account, error) {
		return applySellPart(cur, partID)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("part sold", "part", partID, "balance", next.Balance)
	return next, nil
}

func (s *Service) BuyWarehouse(ctx context.Context, warehouseID int) (*Account, error) {
	next, err := s.store.Update(ctx, func(cur *Account) (*Account, error) {
		return applyBuyWarehouse(cur, warehouseID)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("warehouse bought", "warehouse", warehouseID, "balance", next.Balance)
	return next, nil
}

// SellWarehouse liquidates the warehouse and everything inside it.
func (s *Service) SellWarehouse(ctx context.Context, warehouseID int) (*Account, int, error) {
	var payout int
	next, err := s.store.Update(ctx, func(cur *Account) (*Account, error) {
		n, p, err := applySellWarehouse(cur, warehouseID)
		if err != nil {
			return nil, err
		}
		payout = p
		return n, nil
	})
	if err != nil {
		return nil, 0, err
	}
	s.log.Info("warehouse sold", "warehouse", warehouseID, "payout", payout)
	return next, payout, nil
}

// Offers regenerates the deterministic batch for the current account
// and filters out ids dismissed this session.
func (s *Service) Offers(ctx context.Context) ([]Offer, error) {
	a, err := s.Account(ctx)
	if err != nil {
		return nil, err
	}
	all := generateOffers(a)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Offer, 0, len(all))
	for _, o := range all {
		if !s.dismissed[o.ID] {
			out = append(out, o)
		}
	}
	return out, nil
}

// AcceptOffer executes the trade named by the offer id. The offer is
// re-derived from the current snapshot rather than trusted from the
// client; an id that no longer appears in the live batch fails with
// ErrOfferNotFound.
func (s *Service) AcceptOffer(ctx context.Context, offerID string) (*Account, error) {
	s.mu.Lock()
	alreadyDismissed := s.dismissed[offerID]
	s.mu.Unlock()
	if alreadyDismissed {
		return nil, ErrOfferNotFound
	}

	next, err := s.store.Update(ctx, func(cur *Account) (*Account, error) {
		var match *Offer
		for _, o := range generateOffers(cur) {
			if o.ID == offerID {
				match = &o
				break
			}
		}
		if match == nil {
			return nil, ErrOfferNotFound
		}
		return applyAcceptOffer(cur, match.CarWantedID, match.CarOffered.ID)
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.dismissed[offerID] = true
	s.mu.Unlock()
	s.log.Info("offer accepted", "offer", offerID, "balance", next.Balance)
	return next, nil
}

// DeclineOffer hides the offer for the rest of the session. It never
// touches the account.
func (s *Service) DeclineOffer(offerID string) {
	s.mu.Lock()
	s.dismissed[offerID] = true
	s.mu.Unlock()
	s.log.Info("offer declined", "offer", offerID)
}
