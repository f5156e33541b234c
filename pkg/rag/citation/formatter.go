package citation

import (
	"fmt"
	"strings"

	"ragchat-be/internal/entity"
)

// FormatAPA renders an APA-style citation string for a document,
// e.g. "Smith, J. (2023). Research on AI." Missing fields fall back to
// "Unknown author" / "n.d." / the source filename.
func FormatAPA(doc *entity.Document) string {
	author := strings.TrimSpace(doc.Author)
	if author == "" {
		author = "Unknown author"
	}

	year := strings.TrimSpace(doc.Year)
	if year == "" {
		year = "n.d."
	}

	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = strings.TrimSpace(doc.Source)
	}
	if title == "" {
		title = "Untitled document"
	}
	title = strings.TrimSuffix(title, ".")

	return fmt.Sprintf("%s (%s). %s.", author, year, title)
}

// FromDocument projects a retrieved document into a citation.
func FromDocument(doc *entity.Document) entity.Citation {
	return entity.Citation{
		Text:   FormatAPA(doc),
		Source: doc.Source,
		Title:  doc.Title,
		Author: doc.Author,
		Year:   doc.Year,
	}
}

// ExtractYear pulls a 4-digit year out of a PDF-style creation date such as
// "D:20240607114253+02'00'". Returns "" when no year can be read.
func ExtractYear(creationDate string) string {
	s := strings.TrimPrefix(strings.TrimSpace(creationDate), "D:")
	if len(s) < 4 {
		return ""
	}
	year := s[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return year
}
