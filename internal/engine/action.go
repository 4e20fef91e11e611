package engine

import "tidy/internal/scan"

// Status is the terminal outcome for one file.
type Status string

const (
	// StatusMoved means the file landed in its destination folder.
	StatusMoved Status = "moved"
	// StatusRenamed means the file was renamed in place without moving.
	StatusRenamed Status = "renamed"
	// StatusSkipped means the file was left untouched.
	StatusSkipped Status = "skipped"
	// StatusDuplicate means identical content already existed at the
	// destination and the file was quarantined.
	StatusDuplicate Status = "duplicate"
	// StatusError means a filesystem operation failed; the run continued.
	StatusError Status = "error"
)

// Action records everything that happened to one file. The engine appends
// one per processed file; nothing is ever removed or rewritten.
type Action struct {
	File        scan.FileDescriptor
	Category    string
	Subcategory string
	Detector    string
	Confidence  float64
	Rationale   string
	Routed      bool
	NewName     string
	Renamer     string
	FinalPath   string
	Status      Status
	Detail      string
	Err         error
}

// Renamed reports whether the file ended up with a new name.
func (a Action) Renamed() bool {
	return a.NewName != "" && a.NewName != a.File.Name
}

// RunSummary folds the action sequence into counters.
type RunSummary struct {
	Processed  int `json:"processed"`
	Moved      int `json:"moved"`
	Renamed    int `json:"renamed"`
	Skipped    int `json:"skipped"`
	Duplicates int `json:"duplicates"`
	Errors     int `json:"errors"`
	Unsorted   int `json:"unsorted"`
}

// Summarize folds actions into a RunSummary.
func Summarize(actions []Action) RunSummary {
	var s RunSummary
	for _, a := range actions {
		s.Processed++
		switch a.Status {
		case StatusMoved:
			s.Moved++
		case StatusRenamed:
			s.Renamed++
		case StatusSkipped:
			s.Skipped++
		case StatusDuplicate:
			s.Duplicates++
		case StatusError:
			s.Errors++
		}
		if a.Status == StatusMoved && a.Renamed() {
			s.Renamed++
		}
		if a.Category == "" || a.Status == StatusError || a.Status == StatusSkipped {
			continue
		}
		if a.Category == unsortedName {
			s.Unsorted++
		}
	}
	return s
}
