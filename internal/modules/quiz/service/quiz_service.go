package service

import (
	"context"

	"wellness/internal/modules/quiz/domain"
	quizout "wellness/internal/modules/quiz/port/out"
)

type QuizService struct {
	store quizout.ResponseStore
}

func NewQuizService(store quizout.ResponseStore) *QuizService {
	return &QuizService{store: store}
}

// Submit validates and stores response. Validation failures never reach the store.
func (s *QuizService) Submit(ctx context.Context, owner *domain.Owner, response domain.Response) (string, error) {
	normalized := response.Normalized()
	if err := normalized.Validate(); err != nil {
		return "", err
	}
	return s.store.Insert(ctx, owner, normalized)
}
