package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/voxelsmith/slate/pkg/block"
	"github.com/voxelsmith/slate/pkg/catalog"
	"github.com/voxelsmith/slate/pkg/data"
)

func TestRecordResultRoundTrip(t *testing.T) {
	b := attachedBackend(t)

	res, err := data.SuccessReplaceAll(
		[]data.Value{data.NewValue("facing", "south"), data.NewValue("level", 3)},
		[]data.Value{data.NewValue("facing", "north"), data.NewValue("level", 0)},
	)
	if err != nil {
		t.Fatal(err)
	}

	rec, err := b.RecordResult("slate:furnace", res)
	if err != nil {
		t.Fatalf("RecordResult failed: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("record has empty ID")
	}

	loaded, err := b.Transaction(rec.ID)
	if err != nil {
		t.Fatalf("Transaction failed: %v", err)
	}
	if loaded.BlockType != "slate:furnace" {
		t.Errorf("BlockType = %q, want slate:furnace", loaded.BlockType)
	}
	if loaded.Kind != data.KindSuccess {
		t.Errorf("Kind = %q, want %q", loaded.Kind, data.KindSuccess)
	}
	if len(loaded.Succeeded) != 2 || len(loaded.Replaced) != 2 {
		t.Fatalf("lengths = %d/%d, want 2/2", len(loaded.Succeeded), len(loaded.Replaced))
	}
	if loaded.Rejected != nil {
		t.Errorf("Rejected = %v, want nil", loaded.Rejected)
	}

	// Order and payload types survive the round trip; the int value must
	// come back as an int, not a float.
	if loaded.Succeeded[0] != data.NewValue("facing", "south") {
		t.Errorf("Succeeded[0] = %v", loaded.Succeeded[0])
	}
	if loaded.Succeeded[1] != data.NewValue("level", 3) {
		t.Errorf("Succeeded[1] = %v (%T)", loaded.Succeeded[1], loaded.Succeeded[1].Get())
	}
	if loaded.Replaced[1] != data.NewValue("level", 0) {
		t.Errorf("Replaced[1] = %v (%T)", loaded.Replaced[1], loaded.Replaced[1].Get())
	}
}

func TestJournalSupportsUndo(t *testing.T) {
	b := attachedBackend(t)
	md := furnaceMetadata(t)
	if err := b.SaveMetadata(md); err != nil {
		t.Fatal(err)
	}

	s, err := block.NewState(md)
	if err != nil {
		t.Fatal(err)
	}
	changed, res, err := s.Offer(data.NewValue("facing", "west"), data.NewValue("lit", true))
	if err != nil {
		t.Fatal(err)
	}

	rec, err := b.RecordResult(md.Type(), res)
	if err != nil {
		t.Fatal(err)
	}

	// Rebuild the result from the journal and undo with it.
	loaded, err := b.Transaction(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	replayed, err := loaded.Result()
	if err != nil {
		t.Fatal(err)
	}
	restored, err := changed.Undo(replayed)
	if err != nil {
		t.Fatal(err)
	}
	if !restored.Equal(s) {
		t.Errorf("journal replay did not restore original state: got %v", restored.Values())
	}
}

func TestTransactionsNewestFirst(t *testing.T) {
	b := attachedBackend(t)

	for _, facing := range []string{"south", "east", "west"} {
		res, err := data.SuccessResult(data.NewValue("facing", facing))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := b.RecordResult("slate:furnace", res); err != nil {
			t.Fatal(err)
		}
	}

	records, err := b.Transactions(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Succeeded[0].Get() != "west" {
		t.Errorf("newest record facing = %v, want west", records[0].Succeeded[0].Get())
	}

	limited, err := b.Transactions(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limited to %d records, want 2", len(limited))
	}
}

func TestRecordResultKeepsAbsentCategoriesAbsent(t *testing.T) {
	b := attachedBackend(t)

	rec, err := b.RecordResult("slate:stone", data.SuccessNoData())
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := b.Transaction(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Succeeded != nil || loaded.Replaced != nil || loaded.Rejected != nil {
		t.Errorf("categories = %v/%v/%v, want all nil", loaded.Succeeded, loaded.Replaced, loaded.Rejected)
	}

	res, err := loaded.Result()
	if err != nil {
		t.Fatal(err)
	}
	if res.SuccessfulData().Defined() {
		t.Error("successful data defined after round trip, want absent")
	}
}

func TestTransactionsOrderAcrossFractionBoundary(t *testing.T) {
	b := attachedBackend(t)

	// .5s formats shorter than .51s under a trimmed layout; the stored
	// fixed-width text must keep these lexically, hence chronologically,
	// ordered.
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older := base.Add(500 * time.Millisecond)
	newer := base.Add(510 * time.Millisecond)

	db, err := b.handle()
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range []struct {
		id string
		at time.Time
	}{
		{"00000000-0000-7000-8000-000000000001", older},
		{"00000000-0000-7000-8000-000000000002", newer},
	} {
		if _, err := db.Exec(
			"INSERT INTO transactions (transaction_id, block_type, kind, created_at) VALUES (?, ?, ?, ?)",
			row.id, "slate:stone", string(data.KindSuccess), row.at.Format(journalTimeLayout),
		); err != nil {
			t.Fatal(err)
		}
	}

	records, err := b.Transactions(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if !records[0].CreatedAt.Equal(newer) {
		t.Errorf("first record at %v, want %v", records[0].CreatedAt, newer)
	}
	if !records[1].CreatedAt.Equal(older) {
		t.Errorf("second record at %v, want %v", records[1].CreatedAt, older)
	}
}

func TestJournalTimeLayoutIsFixedWidth(t *testing.T) {
	times := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 123456789, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 500000000, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 510000000, time.UTC),
	}
	width := len(times[0].Format(journalTimeLayout))
	for i, ts := range times {
		formatted := ts.Format(journalTimeLayout)
		if len(formatted) != width {
			t.Errorf("Format(%v) = %q (len %d), want len %d", ts, formatted, len(formatted), width)
		}
		parsed, err := time.Parse(journalTimeLayout, formatted)
		if err != nil {
			t.Fatalf("Parse(%q): %v", formatted, err)
		}
		if !parsed.Equal(ts) {
			t.Errorf("round trip of %v gave %v", ts, parsed)
		}
		if i > 0 && formatted <= times[i-1].Format(journalTimeLayout) {
			t.Errorf("%q not lexically after %q", formatted, times[i-1].Format(journalTimeLayout))
		}
	}
}

func TestTransactionNotFound(t *testing.T) {
	b := attachedBackend(t)
	if _, err := b.Transaction("no-such-id"); !errors.Is(err, catalog.ErrTransactionNotFound) {
		t.Errorf("error = %v, want %v", err, catalog.ErrTransactionNotFound)
	}
	if _, err := b.Transaction(""); !errors.Is(err, catalog.ErrInvalidTransactionID) {
		t.Errorf("error = %v, want %v", err, catalog.ErrInvalidTransactionID)
	}
}
