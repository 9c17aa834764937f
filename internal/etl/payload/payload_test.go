package payload

import "testing"

func sampleDoc() Document {
	return Document{
		"id": "team-1",
		"venue": map[string]any{
			"id":       "venue-1",
			"capacity": float64(92000),
			"location": map[string]any{
				"lat": "33.2",
			},
		},
		"players": []any{
			map[string]any{"id": "p1"},
			"not-an-object",
		},
	}
}

func TestLookupNestedPath(t *testing.T) {
	doc := sampleDoc()

	value, ok := doc.Lookup("venue", "location", "lat")
	if !ok || value != "33.2" {
		t.Fatalf("expected nested lookup to succeed, got %v ok=%v", value, ok)
	}

	if _, ok := doc.Lookup("venue", "missing", "lat"); ok {
		t.Fatal("expected missing intermediate segment to report absent")
	}
	if _, ok := doc.Lookup("id", "nested"); ok {
		t.Fatal("expected descent through a scalar to report absent")
	}
}

func TestLookupNilDocument(t *testing.T) {
	var doc Document
	if _, ok := doc.Lookup("anything"); ok {
		t.Fatal("expected lookup on nil document to report absent")
	}
}

func TestTypedAccessors(t *testing.T) {
	doc := sampleDoc()

	if got := doc.StringAt("venue", "id"); got == nil || *got != "venue-1" {
		t.Fatalf("unexpected StringAt result: %v", got)
	}
	if got := doc.StringAt("venue", "capacity"); got != nil {
		t.Fatalf("expected nil for non-string value, got %q", *got)
	}
	if got := doc.IntAt("venue", "capacity"); got == nil || *got != 92000 {
		t.Fatalf("unexpected IntAt result: %v", got)
	}
	if got := doc.IntAt("venue", "id"); got != nil {
		t.Fatalf("expected nil for non-numeric value, got %d", *got)
	}

	if _, ok := doc.DocAt("venue"); !ok {
		t.Fatal("expected DocAt to find venue object")
	}
	if _, ok := doc.DocAt("id"); ok {
		t.Fatal("expected DocAt on a scalar to fail")
	}
}

func TestListEntries(t *testing.T) {
	doc := sampleDoc()

	list := doc.ListAt("players")
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}

	if _, ok := AsDocument(list[0]); !ok {
		t.Fatal("expected first entry to convert to a document")
	}
	if _, ok := AsDocument(list[1]); ok {
		t.Fatal("expected non-object entry to fail conversion")
	}

	if got := doc.ListAt("venue"); got != nil {
		t.Fatalf("expected nil for non-array path, got %v", got)
	}
}
