package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "data.csv",
		"\ufeffTitle,Badge\r\ntext,visibility\r\n\"Hello, World\",true\r\n\"say \"\"hi\"\"\",false\r\n")

	ds, err := ReadCSV(path, 0)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	want := [][]string{
		{"Title", "Badge"},
		{"text", "visibility"},
		{"Hello, World", "true"},
		{`say "hi"`, "false"},
	}
	if !reflect.DeepEqual(ds.Rows, want) {
		t.Errorf("Rows = %q, want %q", ds.Rows, want)
	}
	if ds.Source != path {
		t.Errorf("Source = %q, want %q", ds.Source, path)
	}
}

func TestReadDelimited_Ragged(t *testing.T) {
	rows, err := readDelimited(strings.NewReader("a,b\nc\n"), 0)
	if err != nil {
		t.Fatalf("readDelimited failed: %v", err)
	}
	if len(rows) != 2 || len(rows[1]) != 1 {
		t.Errorf("Expected ragged rows to be kept, got %q", rows)
	}
}

func TestReadDelimited_Empty(t *testing.T) {
	rows, err := readDelimited(strings.NewReader("\ufeff"), 0)
	if err != nil {
		t.Fatalf("readDelimited failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows, got %q", rows)
	}
}

func TestReadDataset_ByExtension(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		opts    DatasetOptions
	}{
		{"tsv", "data.tsv", "Title\tBadge\ntext\tvisibility\n", DatasetOptions{}},
		{"csv", "data.csv", "Title,Badge\ntext,visibility\n", DatasetOptions{}},
		{"semicolon override", "data.txt", "Title;Badge\ntext;visibility\n", DatasetOptions{Delimiter: ';'}},
	}

	want := [][]string{{"Title", "Badge"}, {"text", "visibility"}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := ReadDataset(writeFile(t, tt.file, tt.content), tt.opts)
			if err != nil {
				t.Fatalf("ReadDataset failed: %v", err)
			}
			if !reflect.DeepEqual(ds.Rows, want) {
				t.Errorf("Rows = %q, want %q", ds.Rows, want)
			}
		})
	}
}

func TestReadDataset_XLSX(t *testing.T) {
	ds, err := ReadDataset(writeWorkbook(t), DatasetOptions{})
	if err != nil {
		t.Fatalf("ReadDataset failed: %v", err)
	}
	if ds.Width() != 3 {
		t.Errorf("Width = %d, want 3", ds.Width())
	}
}

func TestReadDataset_Missing(t *testing.T) {
	if _, err := ReadDataset(filepath.Join(t.TempDir(), "none.csv"), DatasetOptions{}); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		input   string
		want    rune
		wantErr bool
	}{
		{"", 0, false},
		{"tab", '\t', false},
		{`\t`, '\t', false},
		{"TAB", '\t', false},
		{"comma", ',', false},
		{"semicolon", ';', false},
		{"|", '|', false},
		{"ab", 0, true},
		{`"`, 0, true},
		{"\n", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDelimiter(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDelimiter(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDelimiter(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
