package checkpoint

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadObject(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	type stageOutput struct {
		IDs []string `json:"ids"`
	}

	saved := stageOutput{IDs: []string{"t1", "t2"}}
	if err := store.SaveObject("team_ids", saved); err != nil {
		t.Fatalf("save object: %v", err)
	}
	if !store.HasObject("team_ids") {
		t.Fatal("expected saved object to be reported present")
	}

	var loaded stageOutput
	if err := store.LoadObject("team_ids", &loaded); err != nil {
		t.Fatalf("load object: %v", err)
	}
	if len(loaded.IDs) != 2 || loaded.IDs[0] != "t1" || loaded.IDs[1] != "t2" {
		t.Fatalf("unexpected round-trip result: %+v", loaded)
	}
}

func TestLoadObjectMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	var out map[string]any
	if err := store.LoadObject("never_saved", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveLoadTable(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	header := []string{"team_id", "market", "name"}
	rows := [][]string{
		{"t1", "Alabama", "Crimson Tide"},
		{"t2", "Georgia", "Bulldogs"},
	}
	if err := store.SaveTable("teams", header, rows); err != nil {
		t.Fatalf("save table: %v", err)
	}

	gotHeader, gotRows, err := store.LoadTable("teams")
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	if len(gotHeader) != 3 || gotHeader[1] != "market" {
		t.Fatalf("unexpected header: %v", gotHeader)
	}
	if len(gotRows) != 2 || gotRows[1][2] != "Bulldogs" {
		t.Fatalf("unexpected rows: %v", gotRows)
	}
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	if err := store.SaveObject("rosters", map[string]string{"k": "v"}); err != nil {
		t.Fatalf("save object: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".json" && filepath.Ext(entry.Name()) != ".csv" {
			t.Fatalf("unexpected leftover file %s", entry.Name())
		}
	}
}
