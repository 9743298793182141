package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"profilecut/internal"
)

func TestWriteProfileFile(t *testing.T) {
	profile := internal.Profile{
		Rows: [][]string{
			{"List separator=", "Decimal symbol=."},
			{"Scheme Scheme", ""},
		},
		NumPages: 1,
	}

	out := filepath.Join(t.TempDir(), "nested", "profile.csv")
	if err := WriteProfileFile(profile, out); err != nil {
		t.Fatal(err)
	}

	blob, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	got := string(blob)
	if !strings.HasPrefix(got, "List separator=,Decimal symbol=.\n") {
		t.Fatalf("output=%q", got)
	}
	if !strings.Contains(got, "Scheme Scheme,\n") {
		t.Fatalf("output=%q", got)
	}
}
