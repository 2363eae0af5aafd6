package notes_test

import (
	"path/filepath"
	"testing"
	"time"

	"casevis/pkg/notes"
)

func openTestDB(t *testing.T) *notes.DB {
	t.Helper()
	db, err := notes.OpenDB(filepath.Join(t.TempDir(), "notes", "casevis.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAddAndList(t *testing.T) {
	db := openTestDB(t)

	first := &notes.Note{
		EntityKind: notes.KindIndividual,
		EntityID:   "ind-1",
		Author:     "analyst",
		Text:       "Seen near the pier on Feb 10.",
		CreatedAt:  time.Date(2024, 2, 11, 9, 0, 0, 0, time.UTC),
	}
	second := &notes.Note{
		EntityKind: notes.KindIndividual,
		EntityID:   "ind-1",
		Author:     "analyst",
		Text:       "Alias confirmed by witness.",
		CreatedAt:  time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	for _, n := range []*notes.Note{first, second} {
		if err := db.Add(n); err != nil {
			t.Fatal(err)
		}
		if n.ID == 0 {
			t.Fatal("Add did not assign an ID")
		}
	}

	got, err := db.ForEntity(notes.KindIndividual, "ind-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d notes, want 2", len(got))
	}
	if got[0].Text != second.Text {
		t.Error("notes should be ordered newest first")
	}
}

func TestNotesAreScopedToEntity(t *testing.T) {
	db := openTestDB(t)

	if err := db.Add(&notes.Note{EntityKind: notes.KindCase, EntityID: "case-001",
		Author: "analyst", Text: "Reopened after tip."}); err != nil {
		t.Fatal(err)
	}

	got, err := db.ForEntity(notes.KindCase, "case-002")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d notes for an unannotated entity, want 0", len(got))
	}

	// Same ID under a different kind is a different entity.
	got, err = db.ForEntity(notes.KindLocation, "case-001")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("kind must partition the namespace, got %d notes", len(got))
	}
}

func TestCountAndDelete(t *testing.T) {
	db := openTestDB(t)

	n := &notes.Note{EntityKind: notes.KindEvent, EntityID: "ev-1",
		Author: "analyst", Text: "Timestamp disputed."}
	if err := db.Add(n); err != nil {
		t.Fatal(err)
	}

	count, err := db.CountForEntity(notes.KindEvent, "ev-1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	if err := db.Delete(n.ID); err != nil {
		t.Fatal(err)
	}
	count, err = db.CountForEntity(notes.KindEvent, "ev-1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("count after delete = %d, want 0", count)
	}

	if err := db.Delete(9999); err != nil {
		t.Errorf("deleting a missing note should not error: %v", err)
	}
}

func TestDefaultCreatedAt(t *testing.T) {
	db := openTestDB(t)

	n := &notes.Note{EntityKind: notes.KindLocation, EntityID: "loc-1",
		Author: "analyst", Text: "Camera coverage partial."}
	if err := db.Add(n); err != nil {
		t.Fatal(err)
	}
	if n.CreatedAt.IsZero() {
		t.Error("Add should stamp CreatedAt when unset")
	}
}
