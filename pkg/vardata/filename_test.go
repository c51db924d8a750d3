package vardata

import (
	"errors"
	"testing"
)

func TestFormatFilename(t *testing.T) {
	tests := []struct {
		template string
		row      int
		want     string
	}{
		{"variant_$n.pdf", 1, "variant_1.pdf"},
		{"card-$n-$n.png", 12, "card-12-12.png"},
		{"static.jpg", 3, "static.jpg"},
		{"$n", 7, "7"},
	}

	for _, tt := range tests {
		got, err := FormatFilename(tt.template, tt.row)
		if err != nil {
			t.Errorf("FormatFilename(%q, %d) error = %v", tt.template, tt.row, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFilename(%q, %d) = %q, want %q", tt.template, tt.row, got, tt.want)
		}
	}
}

func TestFormatFilename_Invalid(t *testing.T) {
	tests := []string{
		"",
		"a/b_$n.pdf",
		`a\b.pdf`,
		"what?.pdf",
		"star*.png",
		"pipe|.png",
		`quote".png`,
		"<x>.png",
		"c:$n.png",
		".hidden_$n.pdf",
		"trailing.",
		"trailing ",
		" leading.pdf",
		"tab\there.pdf",
	}

	for _, template := range tests {
		_, err := FormatFilename(template, 1)
		if err == nil {
			t.Errorf("FormatFilename(%q) expected error, got nil", template)
			continue
		}
		if !errors.Is(err, ErrInvalidFilename) {
			t.Errorf("FormatFilename(%q) error = %v, want ErrInvalidFilename", template, err)
		}
	}
}
