package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"carbarn/internal/catalog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// accountKey is the row key for the single player record. The game is
// single-player; the table still keys by text so a save-slot feature
// would not need a migration.
const accountKey = "player"

// ErrTxConflict surfaces after repeated serialization failures.
var ErrTxConflict = errors.New("transaction conflict, retry")

// Store persists the one account record as a jsonb document and fans
// out a change notification after every successful write.
type Store struct {
	db  *pgxpool.Pool
	log *slog.Logger

	mu     sync.Mutex
	nextID int
	subs   map[int]func(*Account)
}

func OpenStore(ctx context.Context, db *pgxpool.Pool, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		db:   db,
		log:  logger,
		subs: map[int]func(*Account){},
	}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE SCHEMA IF NOT EXISTS game;
		CREATE TABLE IF NOT EXISTS game.accounts (
			key        text PRIMARY KEY,
			doc        jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Subscribe registers a callback invoked with the new snapshot after
// every successful write (nil after a delete). The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func(*Account)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(a *Account) {
	s.mu.Lock()
	fns := make([]func(*Account), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		if a == nil {
			fn(nil)
			continue
		}
		fn(a.Clone())
	}
}

// decodeAccountDoc decodes a persisted document field by field. A field
// that fails to decode keeps its zero value instead of failing the
// whole record; normalization then defaults the list shapes. A document
// that is not a JSON object at all decodes to nil.
func decodeAccountDoc(doc []byte) *Account {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil
	}
	a := &Account{}
	decodeField(raw["balance"], &a.Balance)
	decodeField(raw["warehouseIds"], &a.WarehouseIDs)
	decodeField(raw["cars"], &a.Cars)
	decodeField(raw["warehouseInventory"], &a.WarehouseInventory)
	decodeField(raw["fixedCars"], &a.FixedCars)
	decodeField(raw["parts"], &a.Parts)
	decodeField(raw["userName"], &a.UserName)
	decodeField(raw["profileImage"], &a.ProfileImage)
	decodeField(raw["background"], &a.Background)
	decodeField(raw["backgroundImage"], &a.BackgroundImage)
	normalizeAccount(a)
	return a
}

func decodeField(r json.RawMessage, v any) {
	if len(r) == 0 {
		return
	}
	_ = json.Unmarshal(r, v)
}

// Get returns the current account, or nil when nothing is persisted or
// the stored payload is malformed. It never returns a domain error for
// a bad payload; callers treat nil as "no account".
func (s *Store) Get(ctx context.Context) (*Account, error) {
	var doc []byte
	err := s.db.QueryRow(ctx, `
		SELECT doc FROM game.accounts WHERE key = $1
	`, accountKey).Scan(&doc)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a := decodeAccountDoc(doc)
	if a == nil {
		s.log.Warn("discarding malformed account payload", "key", accountKey)
		return nil, nil
	}
	return a, nil
}

// StarterAccount is the snapshot seeded on first creation: the starter
// balance, the starter warehouse, and that warehouse's stock.
func StarterAccount() *Account {
	a := &Account{Balance: StarterBalance}
	normalizeAccount(a)
	w, ok := catalog.WarehouseByID(catalog.StarterWarehouseID)
	if !ok {
		return a
	}
	a.WarehouseIDs = []int{w.ID}
	a.Cars = append([]int{}, w.Inventory...)
	a.WarehouseInventory[w.ID] = append([]int{}, w.Inventory...)
	return a
}

// Create seeds the starter account. With overwrite false an existing
// record is returned untouched; with overwrite true it is replaced.
func (s *Store) Create(ctx context.Context, overwrite bool) (*Account, error) {
	if !overwrite {
		if cur, err := s.Get(ctx); err != nil {
			return nil, err
		} else if cur != nil {
			return cur, nil
		}
	}
	next := StarterAccount()
	if err := s.write(ctx, next); err != nil {
		return nil, err
	}
	s.notify(next)
	return next, nil
}

// Replace merges the given raw fields onto the current snapshot and
// writes the result. Unknown keys are ignored; list fields arriving in
// a non-list shape fall back to empty per the lenient decode.
func (s *Store) Replace(ctx context.Context, patch map[string]json.RawMessage) (*Account, error) {
	return s.Update(ctx, func(cur *Account) (*Account, error) {
		return mergeAccountDoc(cur, patch)
	})
}

// mergeAccountDoc overlays the raw patch fields onto the snapshot's
// document form and decodes the result leniently.
func mergeAccountDoc(cur *Account, patch map[string]json.RawMessage) (*Account, error) {
	doc, err := json.Marshal(cur)
	if err != nil {
		return nil, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(doc, &merged); err != nil {
		return nil, err
	}
	for k, v := range patch {
		merged[k] = v
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	next := decodeAccountDoc(out)
	if next == nil {
		return nil, fmt.Errorf("merge produced an invalid document")
	}
	return next, nil
}

// Update runs fn against a locked snapshot and persists its result.
// The read, the transform, and the write share one serializable
// transaction; serialization failures retry with backoff. Exactly one
// notification fires per successful call.
func (s *Store) Update(ctx context.Context, fn func(*Account) (*Account, error)) (*Account, error) {
	const maxAttempts = 8
	retryDelay := 75 * time.Millisecond
	for attempt := 0; attempt < maxAttempts; attempt++ {
		next, err := s.updateOnce(ctx, fn)
		if err == nil {
			s.notify(next)
			return next, nil
		}
		if !isSerializationError(err) {
			return nil, err
		}
		if attempt == maxAttempts-1 {
			return nil, ErrTxConflict
		}
		if err := sleepWithContext(ctx, retryDelay); err != nil {
			return nil, err
		}
		if retryDelay < 1200*time.Millisecond {
			retryDelay *= 2
		}
	}
	return nil, ErrTxConflict
}

func (s *Store) updateOnce(ctx context.Context, fn func(*Account) (*Account, error)) (*Account, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var doc []byte
	err = tx.QueryRow(ctx, `
		SELECT doc FROM game.accounts WHERE key = $1 FOR UPDATE
	`, accountKey).Scan(&doc)
	if err == pgx.ErrNoRows {
		return nil, ErrNoAccount
	}
	if err != nil {
		return nil, err
	}
	cur := decodeAccountDoc(doc)
	if cur == nil {
		return nil, ErrNoAccount
	}

	next, err := fn(cur)
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(next)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE game.accounts SET doc = $1, updated_at = now() WHERE key = $2
	`, out, accountKey); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *Store) write(ctx context.Context, a *Account) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO game.accounts (key, doc)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
	`, accountKey, doc)
	return err
}

// Delete wipes the record and notifies with a nil snapshot.
func (s *Store) Delete(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `
		DELETE FROM game.accounts WHERE key = $1
	`, accountKey); err != nil {
		return err
	}
	s.notify(nil)
	return nil
}

func isSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
