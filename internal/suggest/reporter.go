package suggest

import (
	"github.com/vk/incanto/internal/engine"
)

// Candidate is one legal continuation of the current input. For a literal
// candidate, Text is the literal's full text and Suffix the portion not yet
// typed. For an open free-text slot Text and Suffix are empty and only
// Category is meaningful.
type Candidate struct {
	Text     string
	Suffix   string
	Category string
	FreeText bool
}

// Report summarizes the live thread set for a suggestion UI.
type Report struct {
	// Candidates lists legal next literals and open free-text slots,
	// deduplicated, in fork order of the threads that contributed them.
	Candidates []Candidate
	// Complete is true when at least one thread has already completed, so
	// the input could be submitted without typing more.
	Complete bool
}

// Describe builds a Report from a settled thread set.
func Describe(threads []engine.Thread) Report {
	var rep Report
	type dedupKey struct {
		text     string
		category string
		freeText bool
	}
	seen := make(map[dedupKey]struct{})

	for _, t := range threads {
		if t.Completed() {
			rep.Complete = true
			continue
		}
		if lit, matched, ok := t.NextLiteral(); ok {
			key := dedupKey{text: lit.Text, category: lit.Category}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			runes := []rune(lit.Text)
			rep.Candidates = append(rep.Candidates, Candidate{
				Text:     lit.Text,
				Suffix:   string(runes[matched:]),
				Category: lit.Category,
			})
			continue
		}
		if ft, ok := t.NextFreeText(); ok {
			key := dedupKey{category: ft.Category, freeText: true}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			rep.Candidates = append(rep.Candidates, Candidate{
				Category: ft.Category,
				FreeText: true,
			})
		}
	}
	return rep
}
