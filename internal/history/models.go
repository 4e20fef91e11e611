package history

import "time"

// Run is one invocation of the organizer over a source directory.
type Run struct {
	ID             string    `json:"id"`
	Mode           string    `json:"mode"`
	SourceDir      string    `json:"source_dir"`
	DestinationDir string    `json:"destination_dir"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at,omitempty"`
	Processed      int       `json:"processed"`
	Moved          int       `json:"moved"`
	Renamed        int       `json:"renamed"`
	Skipped        int       `json:"skipped"`
	Duplicates     int       `json:"duplicates"`
	Errors         int       `json:"errors"`
}

// Finished reports whether the run recorded a completion time.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Duration returns the wall-clock length of a finished run, zero otherwise.
func (r Run) Duration() time.Duration {
	if !r.Finished() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Action is the recorded outcome for one file within a run.
type Action struct {
	ID          int64     `json:"id"`
	RunID       string    `json:"run_id"`
	SourcePath  string    `json:"source_path"`
	FinalPath   string    `json:"final_path,omitempty"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	Detector    string    `json:"detector,omitempty"`
	Confidence  float64   `json:"confidence"`
	Renamer     string    `json:"renamer,omitempty"`
	Status      string    `json:"status"`
	Detail      string    `json:"detail,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
