package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("expected sql.ErrNoRows to classify as not found")
	}
	if !isNotFound(fmt.Errorf("wrap: %w", sql.ErrNoRows)) {
		t.Fatal("expected wrapped sql.ErrNoRows to classify as not found")
	}
	if isNotFound(fmt.Errorf("other failure")) {
		t.Fatal("unexpected not-found classification")
	}
}

func TestSplitStatements(t *testing.T) {
	script := `-- relations
CREATE TABLE seasons (season_id VARCHAR(64) PRIMARY KEY);

CREATE TABLE venues (
    venue_id VARCHAR(64) PRIMARY KEY,
    name TEXT
);
`
	statements := SplitStatements(script)
	if len(statements) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(statements), statements)
	}
	if statements[0] != "CREATE TABLE seasons (season_id VARCHAR(64) PRIMARY KEY)" {
		t.Fatalf("unexpected first statement: %q", statements[0])
	}
}

func TestCSVValueFormatsNullables(t *testing.T) {
	name := "Bryant-Denny"
	capacity := 100077
	lat := 33.208

	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{(*string)(nil), ""},
		{(*int)(nil), ""},
		{(*float64)(nil), ""},
		{&name, "Bryant-Denny"},
		{&capacity, "100077"},
		{&lat, "33.208"},
		{"plain", "plain"},
		{7, "7"},
	}
	for _, tc := range cases {
		if got := csvValue(tc.in); got != tc.want {
			t.Fatalf("csvValue(%v): want %q got %q", tc.in, tc.want, got)
		}
	}
}
