// Package fuel owns the fill-up log: loading and persisting entries,
// validating input, and keeping trip distance and mileage consistent.
package fuel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/theirongolddev/fuelsync/internal/log"
	"github.com/theirongolddev/fuelsync/internal/model"
	"github.com/theirongolddev/fuelsync/internal/store"
)

// DefaultKey is the storage key holding the serialized entry list.
const DefaultKey = "fuelsync_entries"

// Storage is a durable key/value string store.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, key string) error
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger used for load fallbacks and storage failures.
func WithLogger(l *log.Logger) Option {
	return func(r *Repository) { r.log = l.WithComponent("repository") }
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(r *Repository) { r.key = key }
}

// WithSeed replaces the dataset installed when storage has no usable data.
func WithSeed(seed func() []model.FuelEntry) Option {
	return func(r *Repository) { r.seed = seed }
}

// Repository is the single source of truth for fuel entries. Entries are
// held in insertion order; every mutation re-derives trip distance and
// mileage over the whole log and then writes it to storage.
type Repository struct {
	mu      sync.RWMutex
	storage Storage
	key     string
	seed    func() []model.FuelEntry
	log     *log.Logger

	entries []model.FuelEntry
	seeded  bool
}

// Open loads the entry log from storage. When the key is missing, the
// document is corrupt, or the read fails, the seed dataset is loaded and
// written back. Open itself never fails; a failed seed write is logged.
func Open(ctx context.Context, s Storage, opts ...Option) *Repository {
	r := &Repository{
		storage: s,
		key:     DefaultKey,
		seed:    Seed,
		log:     log.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.mu.Lock()
	r.load(ctx)
	r.mu.Unlock()
	return r
}

func (r *Repository) load(ctx context.Context) {
	r.seeded = false

	data, err := r.storage.Get(ctx, r.key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		r.log.Info("no stored entries, installing sample data", "key", r.key)
		r.installSeed(ctx)
		return
	case err != nil:
		r.log.WarnContext(ctx, "reading stored entries failed, using sample data", "key", r.key, "error", err)
		r.installSeed(ctx)
		return
	}

	res, err := Decode(data)
	if err != nil {
		r.log.WarnContext(ctx, "stored entries are corrupt, using sample data", "key", r.key, "error", err)
		r.installSeed(ctx)
		return
	}
	if len(res.BadDates) > 0 {
		r.log.Warn("entries with unreadable dates", "ids", res.BadDates)
	}

	// Derived fields are trusted as stored until the next mutation.
	r.entries = res.Entries
	r.log.Debug("loaded entries", "count", len(r.entries))
}

func (r *Repository) installSeed(ctx context.Context) {
	r.entries = r.seed()
	r.seeded = true
	if err := r.persist(ctx, "seed"); err != nil {
		r.log.ErrorContext(ctx, "saving sample data failed", "error", err)
	}
}

// Seeded reports whether the last load fell back to the sample dataset.
func (r *Repository) Seeded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.seeded
}

// List returns all entries newest first. Entries sharing a date keep
// their insertion order.
func (r *Repository) List() []model.FuelEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.FuelEntry, len(r.entries))
	copy(out, r.entries)
	sortDescending(out)
	return out
}

// Chronological returns all entries oldest first.
func (r *Repository) Chronological() []model.FuelEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return SortAscending(r.entries)
}

// Len returns the number of entries.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Get returns the entry with id.
func (r *Repository) Get(id int) (model.FuelEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return model.FuelEntry{}, false
	}
	return r.entries[i], true
}

// LastEntry returns the chronologically latest entry.
func (r *Repository) LastEntry() (model.FuelEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.entries) == 0 {
		return model.FuelEntry{}, false
	}
	asc := SortAscending(r.entries)
	return asc[len(asc)-1], true
}

// Create validates in, assigns the next id, and appends the entry.
// On a storage failure the entry stays in memory and a *PersistenceError
// is returned together with it.
func (r *Repository) Create(ctx context.Context, in model.EntryInput) (model.FuelEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := validateAgainst(r.entries, 0, in); err != nil {
		return model.FuelEntry{}, err
	}

	e := fromInput(r.nextID(), in)
	r.entries = append(r.entries, e)
	r.rederive()

	created := r.entries[len(r.entries)-1]
	r.log.Debug("created entry", "id", created.ID, "odometer", created.OdometerReading)
	return created, r.persist(ctx, "create")
}

// Update replaces the raw fields of entry id. Its id and insertion
// position are kept.
func (r *Repository) Update(ctx context.Context, id int, in model.EntryInput) (model.FuelEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.FuelEntry{}, fmt.Errorf("update %d: %w", id, ErrNotFound)
	}
	if err := validateAgainst(r.entries, id, in); err != nil {
		return model.FuelEntry{}, err
	}

	r.entries[i] = fromInput(id, in)
	r.rederive()

	r.log.Debug("updated entry", "id", id)
	return r.entries[i], r.persist(ctx, "update")
}

// Delete removes entry id and returns it as it was before removal.
// Its chronological successor is re-derived against the new predecessor.
func (r *Repository) Delete(ctx context.Context, id int) (model.FuelEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.FuelEntry{}, fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}

	removed := r.entries[i]
	r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
	r.rederive()

	r.log.Debug("deleted entry", "id", id)
	return removed, r.persist(ctx, "delete")
}

// Import replaces the whole log with entries. Raw fields are validated,
// readings must strictly increase in date order, and ids must be unique
// (ids <= 0 are assigned). Derived fields are recomputed.
func (r *Repository) Import(ctx context.Context, entries []model.FuelEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := 1
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if e.ID >= next {
			next = e.ID + 1
		}
	}

	incoming := make([]model.FuelEntry, 0, len(entries))
	for i, e := range entries {
		if err := ValidateInput(e.Input()); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
		id := e.ID
		if id <= 0 {
			id = next
			next++
		}
		if seen[id] {
			return fmt.Errorf("entry %d: duplicate id %d", i+1, id)
		}
		seen[id] = true
		incoming = append(incoming, fromInput(id, e.Input()))
	}

	asc := SortAscending(incoming)
	for i := 1; i < len(asc); i++ {
		if asc[i].OdometerReading <= asc[i-1].OdometerReading {
			return ValidationErrors{{
				Field: FieldOdometerReading,
				Reason: fmt.Sprintf("reading %.0f on %s does not exceed %.0f on %s",
					asc[i].OdometerReading, asc[i].Date.Format("2006-01-02"),
					asc[i-1].OdometerReading, asc[i-1].Date.Format("2006-01-02")),
			}}
		}
	}

	r.entries = incoming
	r.seeded = false
	r.rederive()
	r.log.Info("imported entries", "count", len(r.entries))
	return r.persist(ctx, "import")
}

// Reset clears stored data and reinstalls the sample dataset.
func (r *Repository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.storage.Clear(ctx, r.key); err != nil {
		return &PersistenceError{Op: "reset", Err: err}
	}
	r.entries = r.seed()
	r.seeded = true
	return r.persist(ctx, "reset")
}

// Save writes the current log to storage again, for retrying after a
// failed write.
func (r *Repository) Save(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.persist(ctx, "save")
}

// Export serializes the log in its stored form.
func (r *Repository) Export() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Encode(r.entries)
}

func (r *Repository) indexOf(id int) int {
	for i, e := range r.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) nextID() int {
	highest := 0
	for _, e := range r.entries {
		if e.ID > highest {
			highest = e.ID
		}
	}
	return highest + 1
}

// rederive recomputes derived fields over the full log in date order and
// writes them back to the entries in insertion order.
func (r *Repository) rederive() {
	derived := DeriveMileage(SortAscending(r.entries))
	byID := make(map[int]model.FuelEntry, len(derived))
	for _, e := range derived {
		byID[e.ID] = e
	}
	for i := range r.entries {
		d := byID[r.entries[i].ID]
		r.entries[i].TripDistance = d.TripDistance
		r.entries[i].Mileage = d.Mileage
	}
}

func (r *Repository) persist(ctx context.Context, op string) error {
	data, err := Encode(r.entries)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if err := r.storage.Set(ctx, r.key, data); err != nil {
		r.log.ErrorContext(ctx, "writing entries failed", "op", op, "error", err)
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

func fromInput(id int, in model.EntryInput) model.FuelEntry {
	return model.FuelEntry{
		ID:              id,
		Date:            NormalizeDate(in.Date),
		OdometerReading: in.OdometerReading,
		FuelQuantity:    in.FuelQuantity,
		PricePerLiter:   in.PricePerLiter,
		TotalCost:       TotalCost(in.FuelQuantity, in.PricePerLiter),
	}
}
