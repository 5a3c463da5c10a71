package parser

import (
	"strings"
	"testing"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	want := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	if doc.Text != want {
		t.Errorf("expected text %q, got %q", want, doc.Text)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}

func TestTextParser_MultipleBlankLines(t *testing.T) {
	// Consecutive blank lines must not produce empty paragraphs.
	input := "Para one.\n\n\n\nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "Para one.\n\nPara two." {
		t.Errorf("unexpected text %q", doc.Text)
	}
}

func TestTextParser_JSONExtension(t *testing.T) {
	p, err := ForFile("data.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := p.Parse(strings.NewReader(`{"name": "string"}`), "data.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "data" {
		t.Errorf("expected title %q, got %q", "data", doc.Title)
	}
	if !strings.Contains(doc.Text, `"name"`) {
		t.Errorf("expected raw json text, got %q", doc.Text)
	}
}

func TestIsSupportedExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"doc.txt", true},
		{"doc.json", true},
		{"doc.md", true},
		{"doc.csv", true},
		{"doc.html", true},
		{"doc.pdf", true},
		{"doc.docx", true},
		{"doc.PDF", true}, // case-insensitive
		{"doc.exe", false},
		{"doc", false},
	}
	for _, tt := range tests {
		if got := IsSupportedExtension(tt.filename); got != tt.want {
			t.Errorf("IsSupportedExtension(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	if _, err := ForFile("malware.exe"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
