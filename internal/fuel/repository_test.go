package fuel

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/theirongolddev/fuelsync/internal/model"
	"github.com/theirongolddev/fuelsync/internal/store"
)

func noSeed() []model.FuelEntry { return nil }

func emptyRepo(t *testing.T) (*Repository, *store.Memory) {
	t.Helper()
	mem := store.NewMemory(nil)
	return Open(context.Background(), mem, WithSeed(noSeed)), mem
}

func input(t *testing.T, date string, odometer, fuel, price float64) model.EntryInput {
	t.Helper()
	return model.EntryInput{
		Date:            day(t, date),
		OdometerReading: odometer,
		FuelQuantity:    fuel,
		PricePerLiter:   price,
	}
}

func mustCreate(t *testing.T, r *Repository, in model.EntryInput) model.FuelEntry {
	t.Helper()
	e, err := r.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create(%+v): %v", in, err)
	}
	return e
}

// failingStorage reads nothing and refuses every write.
type failingStorage struct{}

func (failingStorage) Get(context.Context, string) ([]byte, error) { return nil, store.ErrNotFound }
func (failingStorage) Set(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}
func (failingStorage) Clear(context.Context, string) error { return errors.New("quota exceeded") }

func TestOpen_MissingKeyInstallsSeed(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory(nil)
	r := Open(ctx, mem)

	if !r.Seeded() {
		t.Fatal("Seeded() = false on first run")
	}
	if r.Len() != len(Seed()) {
		t.Fatalf("Len = %d, want %d", r.Len(), len(Seed()))
	}
	if _, err := mem.Get(ctx, DefaultKey); err != nil {
		t.Fatalf("seed was not persisted: %v", err)
	}
}

func TestOpen_MalformedDataFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory(map[string][]byte{DefaultKey: []byte("{not json")})
	r := Open(ctx, mem)

	if !r.Seeded() || r.Len() != len(Seed()) {
		t.Fatalf("Seeded=%v Len=%d, want seed data", r.Seeded(), r.Len())
	}
	data, err := mem.Get(ctx, DefaultKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	res, err := Decode(data)
	if err != nil {
		t.Fatalf("persisted seed does not decode: %v", err)
	}
	if len(res.Entries) != len(Seed()) {
		t.Fatalf("persisted %d entries, want %d", len(res.Entries), len(Seed()))
	}
}

func TestOpen_TrustsStoredDerivedFields(t *testing.T) {
	doc := `[{"Id":1,"date":"2024-01-01","odometerReading":1000,"fuelQuantity":5,"pricePerLiter":100,"totalCost":500,"tripDistance":12,"mileage":34}]`
	mem := store.NewMemory(map[string][]byte{DefaultKey: []byte(doc)})
	r := Open(context.Background(), mem)

	e, ok := r.Get(1)
	if !ok {
		t.Fatal("entry 1 missing")
	}
	if e.TripDistance != 12 || e.Mileage != 34 {
		t.Fatalf("stored derived fields recomputed on load: %+v", e)
	}
}

func TestCreate_DerivesFromPrevious(t *testing.T) {
	r, _ := emptyRepo(t)
	first := mustCreate(t, r, input(t, "2024-01-01", 1000, 5, 100))
	second := mustCreate(t, r, input(t, "2024-01-08", 1300, 4, 100))

	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", first.ID, second.ID)
	}
	if second.TripDistance != 300 || second.Mileage != 60 || second.TotalCost != 400 {
		t.Fatalf("second = %+v, want trip 300 mileage 60 cost 400", second)
	}
	if got, _ := r.Get(1); got.Mileage != 0 || got.TripDistance != 0 {
		t.Fatalf("first entry derived = %+v, want zeros", got)
	}
}

func TestCreate_RejectsNonIncreasingReading(t *testing.T) {
	r, _ := emptyRepo(t)
	mustCreate(t, r, input(t, "2024-01-01", 1000, 5, 100))

	_, err := r.Create(context.Background(), input(t, "2024-01-08", 1000, 4, 100))
	var fieldErr *InvalidEntryError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("err = %v, want *InvalidEntryError", err)
	}
	if fieldErr.Field != FieldOdometerReading {
		t.Fatalf("Field = %q, want %q", fieldErr.Field, FieldOdometerReading)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d after rejected create, want 1", r.Len())
	}
}

func TestCreate_RejectsInvalidFields(t *testing.T) {
	r, _ := emptyRepo(t)
	_, err := r.Create(context.Background(), model.EntryInput{OdometerReading: -1})

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
	for _, f := range []string{FieldDate, FieldOdometerReading, FieldFuelQuantity, FieldPricePerLiter} {
		if verrs.Reason(f) == "" {
			t.Errorf("no error reported for %s", f)
		}
	}
}

func TestCreate_BackdatedEntryRederivesSuccessor(t *testing.T) {
	r, _ := emptyRepo(t)
	mustCreate(t, r, input(t, "2024-01-01", 1000, 5, 100))
	last := mustCreate(t, r, input(t, "2024-01-15", 1600, 5, 100))
	mid := mustCreate(t, r, input(t, "2024-01-08", 1300, 4, 100))

	if mid.TripDistance != 300 || mid.Mileage != 60 {
		t.Fatalf("backdated entry = %+v, want trip 300 mileage 60", mid)
	}
	got, _ := r.Get(last.ID)
	if got.TripDistance != 300 || got.Mileage != 75 {
		t.Fatalf("successor = %+v, want trip 300 mileage 75", got)
	}

	if _, err := r.Create(context.Background(), input(t, "2024-01-10", 1700, 4, 100)); err == nil {
		t.Fatal("reading above the next entry's was accepted")
	}
}

func TestUpdate(t *testing.T) {
	r, _ := emptyRepo(t)
	mustCreate(t, r, input(t, "2024-01-01", 1000, 5, 100))
	second := mustCreate(t, r, input(t, "2024-01-08", 1300, 4, 100))

	updated, err := r.Update(context.Background(), second.ID, input(t, "2024-01-08", 1250, 4, 110))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != second.ID || updated.TripDistance != 250 || updated.Mileage != 50 || updated.TotalCost != 440 {
		t.Fatalf("updated = %+v", updated)
	}

	if _, err := r.Update(context.Background(), 99, input(t, "2024-02-01", 2000, 4, 100)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update(99) err = %v, want ErrNotFound", err)
	}
}

func TestDelete_RederivesNeighbour(t *testing.T) {
	r, _ := emptyRepo(t)
	mustCreate(t, r, input(t, "2024-01-01", 1000, 5, 100))
	mid := mustCreate(t, r, input(t, "2024-01-08", 1300, 4, 100))
	last := mustCreate(t, r, input(t, "2024-01-15", 1500, 5, 100))

	removed, err := r.Delete(context.Background(), mid.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed.ID != mid.ID {
		t.Fatalf("removed id = %d, want %d", removed.ID, mid.ID)
	}
	got, _ := r.Get(last.ID)
	if got.TripDistance != 500 || got.Mileage != 100 {
		t.Fatalf("successor after delete = %+v, want trip 500 mileage 100", got)
	}

	if _, err := r.Delete(context.Background(), mid.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete err = %v, want ErrNotFound", err)
	}
}

func TestDelete_FirstEntryResetsSuccessor(t *testing.T) {
	r, _ := emptyRepo(t)
	first := mustCreate(t, r, input(t, "2024-01-01", 1000, 5, 100))
	second := mustCreate(t, r, input(t, "2024-01-08", 1300, 4, 100))
	mustCreate(t, r, input(t, "2024-01-15", 1500, 5, 100))

	if _, err := r.Delete(context.Background(), first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ := r.Get(second.ID)
	if got.TripDistance != 0 || got.Mileage != 0 {
		t.Fatalf("new first entry = trip %v mileage %v, want 0/0", got.TripDistance, got.Mileage)
	}
}

func TestUpdate_RederivesSuccessor(t *testing.T) {
	r, _ := emptyRepo(t)
	first := mustCreate(t, r, input(t, "2024-01-01", 1000, 5, 100))
	second := mustCreate(t, r, input(t, "2024-01-08", 1300, 4, 100))

	if _, err := r.Update(context.Background(), first.ID, input(t, "2024-01-01", 1000, 10, 100)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := r.Get(second.ID)
	if got.TripDistance != 300 || got.Mileage != 30 {
		t.Fatalf("successor = trip %v mileage %v, want 300 and 30 (300 km on 10 L)", got.TripDistance, got.Mileage)
	}
}

func TestUpdate_DateMoveReorders(t *testing.T) {
	r, _ := emptyRepo(t)
	a := mustCreate(t, r, input(t, "2024-01-01", 1000, 5, 100))
	b := mustCreate(t, r, input(t, "2024-01-08", 1300, 4, 100))
	c := mustCreate(t, r, input(t, "2024-01-15", 1500, 5, 100))

	if _, err := r.Update(context.Background(), b.ID, input(t, "2024-01-20", 1600, 4, 100)); err != nil {
		t.Fatalf("Update: %v", err)
	}

	chrono := r.Chronological()
	want := []int{a.ID, c.ID, b.ID}
	for i, id := range want {
		if chrono[i].ID != id {
			t.Fatalf("order = %v, want ids %v", chrono, want)
		}
	}
	if got := chrono[1]; got.TripDistance != 500 || got.Mileage != 100 {
		t.Fatalf("moved-up entry = trip %v mileage %v, want 500/100", got.TripDistance, got.Mileage)
	}
	if got := chrono[2]; got.TripDistance != 100 || got.Mileage != 20 {
		t.Fatalf("moved entry = trip %v mileage %v, want 100/20", got.TripDistance, got.Mileage)
	}
}

func TestCreate_RejectsNonFinite(t *testing.T) {
	tests := []struct {
		name  string
		in    model.EntryInput
		field string
	}{
		{"infinite odometer", input(t, "2024-01-01", math.Inf(1), 5, 100), FieldOdometerReading},
		{"NaN price", input(t, "2024-01-01", 1000, 5, math.NaN()), FieldPricePerLiter},
		{"cost overflows", input(t, "2024-01-01", 1000, 1e200, 1e200), FieldFuelQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mem := emptyRepo(t)
			mustCreate(t, r, input(t, "2023-12-01", 500, 5, 100))

			_, err := r.Create(context.Background(), tt.in)
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("err = %v, want ValidationErrors", err)
			}
			if IsPersistence(err) {
				t.Fatalf("err = %v reported as a storage failure", err)
			}
			if verrs.Reason(tt.field) == "" {
				t.Fatalf("err = %v, want a reason for %s", err, tt.field)
			}
			if r.Len() != 1 {
				t.Fatalf("Len = %d, want 1", r.Len())
			}
			// The log must still save.
			if err := r.Save(context.Background()); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if _, err := mem.Get(context.Background(), DefaultKey); err != nil {
				t.Fatalf("Get: %v", err)
			}
		})
	}
}

func TestList_NewestFirstStableTies(t *testing.T) {
	r, _ := emptyRepo(t)
	a := mustCreate(t, r, input(t, "2024-01-01", 1000, 5, 100))
	b := mustCreate(t, r, input(t, "2024-01-01", 1100, 5, 100))
	c := mustCreate(t, r, input(t, "2024-01-08", 1400, 5, 100))

	list := r.List()
	want := []int{c.ID, a.ID, b.ID}
	for i, id := range want {
		if list[i].ID != id {
			t.Fatalf("List order = %d,%d,%d; want %v", list[0].ID, list[1].ID, list[2].ID, want)
		}
	}
	if got, _ := r.Get(b.ID); got.TripDistance != 100 {
		t.Fatalf("same-day successor trip = %v, want 100", got.TripDistance)
	}

	lastEntry, ok := r.LastEntry()
	if !ok || lastEntry.ID != c.ID {
		t.Fatalf("LastEntry = %+v, want id %d", lastEntry, c.ID)
	}
}

func TestMutations_PersistAcrossOpen(t *testing.T) {
	ctx := context.Background()
	r, mem := emptyRepo(t)
	mustCreate(t, r, input(t, "2024-01-01", 1000, 5, 100))
	mustCreate(t, r, input(t, "2024-01-08", 1300, 4, 100))

	reopened := Open(ctx, mem, WithSeed(noSeed))
	if reopened.Seeded() {
		t.Fatal("reopened repository fell back to seed")
	}
	got, ok := reopened.Get(2)
	if !ok || got.Mileage != 60 {
		t.Fatalf("reloaded entry 2 = %+v", got)
	}
}

func TestCreate_PersistenceFailureKeepsEntry(t *testing.T) {
	r := Open(context.Background(), failingStorage{}, WithSeed(noSeed))

	e, err := r.Create(context.Background(), input(t, "2024-01-01", 1000, 5, 100))
	if !IsPersistence(err) {
		t.Fatalf("err = %v, want PersistenceError", err)
	}
	if e.ID != 1 {
		t.Fatalf("created entry = %+v, want id 1", e)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (no rollback)", r.Len())
	}
}

// flakyStorage fails writes until healed.
type flakyStorage struct {
	*store.Memory
	broken bool
}

func (f *flakyStorage) Set(ctx context.Context, key string, value []byte) error {
	if f.broken {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

func TestSave_RetriesAfterFailedWrite(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStorage{Memory: store.NewMemory(nil)}
	r := Open(ctx, fs, WithSeed(noSeed))

	fs.broken = true
	if _, err := r.Create(ctx, input(t, "2024-01-01", 1000, 5, 100)); !IsPersistence(err) {
		t.Fatalf("err = %v, want PersistenceError", err)
	}

	fs.broken = false
	if err := r.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reopened := Open(ctx, fs, WithSeed(noSeed))
	if reopened.Len() != 1 {
		t.Fatalf("reopened Len = %d, want 1", reopened.Len())
	}
}

func TestImport(t *testing.T) {
	r, _ := emptyRepo(t)
	err := r.Import(context.Background(), []model.FuelEntry{
		{Date: day(t, "2024-01-08"), OdometerReading: 1300, FuelQuantity: 4, PricePerLiter: 100, Mileage: 999},
		{Date: day(t, "2024-01-01"), OdometerReading: 1000, FuelQuantity: 5, PricePerLiter: 100},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	last, _ := r.LastEntry()
	if last.Mileage != 60 || last.TotalCost != 400 {
		t.Fatalf("imported last entry = %+v, want recomputed mileage 60 cost 400", last)
	}

	err = r.Import(context.Background(), []model.FuelEntry{
		{Date: day(t, "2024-01-01"), OdometerReading: 1000, FuelQuantity: 5, PricePerLiter: 100},
		{Date: day(t, "2024-01-08"), OdometerReading: 900, FuelQuantity: 4, PricePerLiter: 100},
	})
	if err == nil {
		t.Fatal("Import accepted decreasing readings")
	}
	if r.Len() != 2 {
		t.Fatalf("rejected import changed the log: Len = %d", r.Len())
	}
}

func TestReset(t *testing.T) {
	r2 := Open(context.Background(), store.NewMemory(nil))
	mustCreate(t, r2, input(t, "2030-01-01", 99999, 5, 100))
	if err := r2.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if r2.Len() != len(Seed()) || !r2.Seeded() {
		t.Fatalf("after Reset Len=%d Seeded=%v", r2.Len(), r2.Seeded())
	}
}
