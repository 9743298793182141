package util

import "testing"

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Material", want: "material"},
		{name: "padded", input: "  Length ", want: "length"},
		{name: "inner spaces", input: "Item   ID", want: "item id"},
		{name: "tabs", input: "\tQty\t", want: "qty"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeHeader(tc.input); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestTrimCell(t *testing.T) {
	if got := TrimCell("  ABC \t"); got != "ABC" {
		t.Fatalf("got %q", got)
	}
	if got := TrimCell(""); got != "" {
		t.Fatalf("got %q", got)
	}
}
