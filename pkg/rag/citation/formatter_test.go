package citation

import (
	"testing"

	"ragchat-be/internal/entity"
)

func TestFormatAPA(t *testing.T) {
	tests := []struct {
		name string
		doc  entity.Document
		want string
	}{
		{
			name: "full metadata",
			doc:  entity.Document{Author: "Smith, J.", Year: "2023", Title: "Research on AI"},
			want: "Smith, J. (2023). Research on AI.",
		},
		{
			name: "missing author",
			doc:  entity.Document{Year: "2023", Title: "Research on AI"},
			want: "Unknown author (2023). Research on AI.",
		},
		{
			name: "missing year",
			doc:  entity.Document{Author: "Smith, J.", Title: "Research on AI"},
			want: "Smith, J. (n.d.). Research on AI.",
		},
		{
			name: "title falls back to source",
			doc:  entity.Document{Author: "Smith, J.", Year: "2023", Source: "paper.pdf"},
			want: "Smith, J. (2023). paper.pdf.",
		},
		{
			name: "nothing at all",
			doc:  entity.Document{},
			want: "Unknown author (n.d.). Untitled document.",
		},
		{
			name: "trailing period not doubled",
			doc:  entity.Document{Author: "Smith, J.", Year: "2023", Title: "Research on AI."},
			want: "Smith, J. (2023). Research on AI.",
		},
		{
			name: "whitespace-only fields fall back",
			doc:  entity.Document{Author: "  ", Year: "\t", Title: " "},
			want: "Unknown author (n.d.). Untitled document.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAPA(&tt.doc)
			if got != tt.want {
				t.Errorf("FormatAPA() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromDocument(t *testing.T) {
	doc := &entity.Document{
		Text:   "the body",
		Source: "paper.pdf",
		Title:  "Research on AI",
		Author: "Smith, J.",
		Year:   "2023",
	}

	c := FromDocument(doc)
	if c.Text != "Smith, J. (2023). Research on AI." {
		t.Errorf("Text = %q", c.Text)
	}
	if c.Source != "paper.pdf" || c.Title != "Research on AI" || c.Author != "Smith, J." || c.Year != "2023" {
		t.Errorf("metadata not carried over: %+v", c)
	}
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "pdf creation date", in: "D:20240607114253+02'00'", want: "2024"},
		{name: "bare year", in: "19990101", want: "1999"},
		{name: "too short", in: "D:24", want: ""},
		{name: "non numeric", in: "D:abcd0607", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractYear(tt.in); got != tt.want {
				t.Errorf("ExtractYear(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
