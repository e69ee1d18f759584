package pronounce

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/slidecraft/deck2video/internal/deck"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		table Table
		want  string
	}{
		{
			name:  "simple replacement",
			text:  "Use kubectl to deploy.",
			table: Table{"kubectl": "cube control"},
			want:  "Use cube control to deploy.",
		},
		{
			name:  "case insensitive",
			text:  "Run KUBECTL now.",
			table: Table{"kubectl": "cube control"},
			want:  "Run cube control now.",
		},
		{
			name:  "longer phrases matched first",
			text:  "Use PostgreSQL and SQL.",
			table: Table{"SQL": "sequel", "PostgreSQL": "post gress sequel"},
			want:  "Use post gress sequel and sequel.",
		},
		{
			name:  "whole phrase only",
			text:  "MySQL is not SQL.",
			table: Table{"SQL": "sequel"},
			want:  "MySQL is not sequel.",
		},
		{
			name:  "empty table returns unchanged",
			text:  "Nothing changes.",
			table: Table{},
			want:  "Nothing changes.",
		},
		{
			name:  "no match returns unchanged",
			text:  "Hello world.",
			table: Table{"kubectl": "cube control"},
			want:  "Hello world.",
		},
		{
			name:  "multiple occurrences",
			text:  "nginx serves nginx well.",
			table: Table{"nginx": "engine X"},
			want:  "engine X serves engine X well.",
		},
		{
			name: "cascading keys rewrite earlier replacements",
			// "Visual Studio Code" is longer so it is applied first; then the
			// shorter "Code" key matches inside its replacement. Sequential
			// passes keep this behavior on purpose.
			text:  "Open Visual Studio Code now.",
			table: Table{"Visual Studio Code": "VS Code", "Code": "code editor"},
			want:  "Open VS code editor now.",
		},
		{
			name:  "non-word key edges",
			text:  "We ship C++ tools.",
			table: Table{"C++": "see plus plus"},
			want:  "We ship see plus plus tools.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.text, tt.table)
			if got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyIsPure(t *testing.T) {
	text := "Use kubectl."
	table := Table{"kubectl": "cube control"}

	first := Apply(text, table)
	second := Apply(text, table)

	if first != second {
		t.Errorf("Apply not deterministic: %q vs %q", first, second)
	}
	if text != "Use kubectl." {
		t.Error("Apply must not mutate its input")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid table", func(t *testing.T) {
		path := filepath.Join(dir, "pron.json")
		if err := os.WriteFile(path, []byte(`{"kubectl": "cube control", "nginx": "engine X"}`), 0644); err != nil {
			t.Fatal(err)
		}
		table, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(table) != 2 || table["kubectl"] != "cube control" {
			t.Errorf("unexpected table: %v", table)
		}
	})

	t.Run("rejects non-object", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte(`["not", "an", "object"]`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, deck.ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
