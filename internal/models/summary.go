package models

import "github.com/customeros/mailsweep/internal/enum"

// FolderSummary tallies the outcomes of one folder sweep. Reset per folder,
// never persisted.
type FolderSummary struct {
	Account string
	Folder  string
	Checked int
	Deleted int
	Trashed int
	Skipped int
	Errored int
}

func (s *FolderSummary) Add(outcome enum.Outcome) {
	switch outcome {
	case enum.OutcomeDeleted:
		s.Deleted++
	case enum.OutcomeTrashed:
		s.Trashed++
	case enum.OutcomeSkipped:
		s.Skipped++
	case enum.OutcomeErrored:
		s.Errored++
	}
}

// Mutated reports whether anything was flagged deleted or moved, i.e. whether
// the folder needs an expunge.
func (s *FolderSummary) Mutated() bool {
	return s.Deleted+s.Trashed > 0
}
