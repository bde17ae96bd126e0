package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/marcus/margin/internal/api"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMaterialsKey(t *testing.T) {
	if got := MaterialsKey("queue"); got != "materials:queue" {
		t.Errorf("MaterialsKey(queue) = %q", got)
	}
}

func TestNotesKey(t *testing.T) {
	tests := []struct {
		materialID string
		page       int
		want       string
	}{
		{"42", 1, "notes:42:1"},
		{"42", 3, "notes:42:3"},
		{"42", 0, "notes:42:1"}, // page clamps to 1
		{"", 2, "notes::2"},     // all-materials listing
	}
	for _, tt := range tests {
		if got := NotesKey(tt.materialID, tt.page); got != tt.want {
			t.Errorf("NotesKey(%q, %d) = %q, want %q", tt.materialID, tt.page, got, tt.want)
		}
	}
}

func TestMaterialsMissingKey(t *testing.T) {
	s := openTestStore(t)

	ms, _, ok, err := s.Materials(MaterialsKey("queue"))
	if err != nil {
		t.Fatalf("Materials() error: %v", err)
	}
	if ok {
		t.Error("expected ok=false for uncached key")
	}
	if ms != nil {
		t.Errorf("expected nil materials, got %d", len(ms))
	}
}

func TestMaterialsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	key := MaterialsKey("reading")

	added := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	in := []api.Material{
		{ID: "m1", Title: "SICP", Authors: "Abelson, Sussman", Pages: 657, Type: api.TypeBook, Tags: "cs,lisp", Link: "https://example.com/sicp", AddedAt: added, IsOutlined: true},
		{ID: "m2", Title: "6.824", Authors: "Morris", Pages: 0, Type: api.TypeCourse, Tags: "", AddedAt: added},
	}

	changed, err := s.SaveMaterials(key, in)
	if err != nil {
		t.Fatalf("SaveMaterials() error: %v", err)
	}
	if !changed {
		t.Error("first save should report changed")
	}

	out, fetchedAt, ok, err := s.Materials(key)
	if err != nil {
		t.Fatalf("Materials() error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true after save")
	}
	if fetchedAt.IsZero() {
		t.Error("fetchedAt should be set")
	}
	if len(out) != 2 {
		t.Fatalf("got %d materials, want 2", len(out))
	}
	if out[0].ID != "m1" || out[1].ID != "m2" {
		t.Errorf("order not preserved: %q, %q", out[0].ID, out[1].ID)
	}
	if out[0].Title != "SICP" || out[0].Authors != "Abelson, Sussman" || out[0].Pages != 657 {
		t.Errorf("material fields mangled: %+v", out[0])
	}
	if out[0].Type != api.TypeBook || out[0].Tags != "cs,lisp" || out[0].Link != "https://example.com/sicp" {
		t.Errorf("material fields mangled: %+v", out[0])
	}
	if !out[0].IsOutlined || out[1].IsOutlined {
		t.Error("is_outlined not round-tripped")
	}
	if !out[0].AddedAt.Equal(added) {
		t.Errorf("AddedAt = %v, want %v", out[0].AddedAt, added)
	}
}

func TestSaveMaterialsUnchangedSkipsRewrite(t *testing.T) {
	s := openTestStore(t)
	key := MaterialsKey("queue")
	in := []api.Material{{ID: "m1", Title: "Title", AddedAt: time.Now().UTC().Truncate(time.Second)}}

	if _, err := s.SaveMaterials(key, in); err != nil {
		t.Fatalf("SaveMaterials() error: %v", err)
	}
	changed, err := s.SaveMaterials(key, in)
	if err != nil {
		t.Fatalf("SaveMaterials() second call error: %v", err)
	}
	if changed {
		t.Error("identical payload should not report changed")
	}

	// The fetch time is still bumped so staleness math stays honest.
	_, fetchedAt, ok, err := s.Materials(key)
	if err != nil || !ok {
		t.Fatalf("Materials() ok=%v error: %v", ok, err)
	}
	if time.Since(fetchedAt) > time.Minute {
		t.Errorf("fetchedAt not refreshed: %v", fetchedAt)
	}
}

func TestSaveMaterialsReplacesRows(t *testing.T) {
	s := openTestStore(t)
	key := MaterialsKey("all")

	first := []api.Material{
		{ID: "m1", Title: "One", AddedAt: time.Now().UTC()},
		{ID: "m2", Title: "Two", AddedAt: time.Now().UTC()},
		{ID: "m3", Title: "Three", AddedAt: time.Now().UTC()},
	}
	if _, err := s.SaveMaterials(key, first); err != nil {
		t.Fatalf("SaveMaterials() error: %v", err)
	}

	second := []api.Material{{ID: "m9", Title: "Nine", AddedAt: time.Now().UTC()}}
	changed, err := s.SaveMaterials(key, second)
	if err != nil {
		t.Fatalf("SaveMaterials() error: %v", err)
	}
	if !changed {
		t.Error("different payload should report changed")
	}

	out, _, _, err := s.Materials(key)
	if err != nil {
		t.Fatalf("Materials() error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "m9" {
		t.Errorf("stale rows survived replace: %+v", out)
	}
}

func TestNotesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	key := NotesKey("m1", 2)

	added := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	in := api.NotesPage{
		Notes: []api.Note{
			{ID: "n1", MaterialID: "m1", Number: 11, Content: "first «point»", Chapter: 3, Page: 120, Tags: []string{"todo", "key"}, AddedAt: added},
			{ID: "n2", MaterialID: "m1", Number: 12, Content: "second", AddedAt: added},
		},
		Page:       2,
		TotalPages: 5,
		Total:      94,
	}

	changed, err := s.SaveNotes(key, in)
	if err != nil {
		t.Fatalf("SaveNotes() error: %v", err)
	}
	if !changed {
		t.Error("first save should report changed")
	}

	out, _, ok, err := s.Notes(key)
	if err != nil {
		t.Fatalf("Notes() error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true after save")
	}
	if out.Page != 2 || out.TotalPages != 5 || out.Total != 94 {
		t.Errorf("pagination meta mangled: %+v", out)
	}
	if len(out.Notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(out.Notes))
	}
	n := out.Notes[0]
	if n.ID != "n1" || n.MaterialID != "m1" || n.Number != 11 || n.Chapter != 3 || n.Page != 120 {
		t.Errorf("note fields mangled: %+v", n)
	}
	if n.Content != "first «point»" {
		t.Errorf("content mangled: %q", n.Content)
	}
	if len(n.Tags) != 2 || n.Tags[0] != "todo" {
		t.Errorf("tags mangled: %v", n.Tags)
	}
	if len(out.Notes[1].Tags) != 0 {
		t.Errorf("empty tags should stay empty: %v", out.Notes[1].Tags)
	}
}

func TestNotesMissingKey(t *testing.T) {
	s := openTestStore(t)

	_, _, ok, err := s.Notes(NotesKey("m1", 1))
	if err != nil {
		t.Fatalf("Notes() error: %v", err)
	}
	if ok {
		t.Error("expected ok=false for uncached key")
	}
}

func TestDistinctKeysDoNotCollide(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.SaveMaterials(MaterialsKey("queue"), []api.Material{{ID: "q1", AddedAt: time.Now().UTC()}}); err != nil {
		t.Fatalf("SaveMaterials() error: %v", err)
	}
	if _, err := s.SaveMaterials(MaterialsKey("reading"), []api.Material{{ID: "r1", AddedAt: time.Now().UTC()}}); err != nil {
		t.Fatalf("SaveMaterials() error: %v", err)
	}

	q, _, _, err := s.Materials(MaterialsKey("queue"))
	if err != nil {
		t.Fatalf("Materials() error: %v", err)
	}
	r, _, _, err := s.Materials(MaterialsKey("reading"))
	if err != nil {
		t.Fatalf("Materials() error: %v", err)
	}
	if len(q) != 1 || q[0].ID != "q1" || len(r) != 1 || r[0].ID != "r1" {
		t.Errorf("listings collided: queue=%+v reading=%+v", q, r)
	}
}
