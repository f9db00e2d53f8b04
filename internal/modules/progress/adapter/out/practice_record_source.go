package out

import (
	"context"

	practice "wellness/internal/modules/practice/domain"
	practicein "wellness/internal/modules/practice/port/in"
	progressout "wellness/internal/modules/progress/port/out"
)

type PracticeRecordSource struct {
	practice practicein.Usecase
}

func NewPracticeRecordSource(practice practicein.Usecase) progressout.RecordSource {
	return &PracticeRecordSource{practice: practice}
}

func (s *PracticeRecordSource) Records(ctx context.Context) ([]practice.SessionRecord, error) {
	listed, err := s.practice.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]practice.SessionRecord, 0, len(listed))
	for _, r := range listed {
		records = append(records, practice.NewSessionRecord(r.Date, r.DurationSeconds))
	}
	return records, nil
}
