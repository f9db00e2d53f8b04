package dto

import "time"

type SaveInput struct {
	DurationSeconds int
	// EndedAt dates the session; zero means now.
	EndedAt time.Time
}

type SaveOutput struct {
	Date            time.Time
	DurationSeconds int
	Success         bool
	// Remote is false when the record went to the local fallback store.
	Remote bool
}

type RecordOutput struct {
	Date            time.Time
	DurationSeconds int
	Success         bool
}

type ExportInput struct {
	Dir string
}

type ExportOutput struct {
	Paths []string
}
