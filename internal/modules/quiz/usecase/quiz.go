package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"wellness/internal/modules/quiz/domain"
	quizdto "wellness/internal/modules/quiz/dto"
	quizin "wellness/internal/modules/quiz/port/in"
	quizout "wellness/internal/modules/quiz/port/out"
	"wellness/internal/modules/quiz/service"
	applog "wellness/internal/platform/log"
)

type Interactor struct {
	svc      *service.QuizService
	identity quizout.IdentityProvider
	inflight singleflight.Group
	log      zerolog.Logger
}

func NewInteractor(svc *service.QuizService, identity quizout.IdentityProvider) quizin.Usecase {
	return &Interactor{svc: svc, identity: identity, log: applog.WithComponent("quiz")}
}

// Submit stores the answers, tagged with the signed-in user when there is one.
// A second identical submit while the first is running shares its result.
func (i *Interactor) Submit(ctx context.Context, input quizdto.SubmitInput) (quizdto.SubmitOutput, error) {
	response := domain.Response{
		AgeRange:           input.AgeRange,
		RelationshipStatus: input.RelationshipStatus,
		ProblemDuration:    input.ProblemDuration,
		Frequency:          input.Frequency,
		AnxietyLevel:       input.AnxietyLevel,
		TriedSolutions:     input.TriedSolutions,
		MainConcern:        input.MainConcern,
	}.Normalized()
	key := fmt.Sprintf("%+v", response)

	v, err, _ := i.inflight.Do(key, func() (any, error) {
		var owner *domain.Owner
		if i.identity != nil {
			o, ok, err := i.identity.CurrentOwner(ctx)
			if err != nil {
				return quizdto.SubmitOutput{}, err
			}
			if ok {
				owner = &o
			}
		}
		id, err := i.svc.Submit(ctx, owner, response)
		if err != nil {
			i.log.Warn().Err(err).Bool("anonymous", owner == nil).Msg("quiz submit failed")
			return quizdto.SubmitOutput{}, err
		}
		out := quizdto.SubmitOutput{ID: id}
		if owner != nil {
			out.UserID = owner.UserID
		}
		i.log.Info().Str("id", id).Bool("anonymous", owner == nil).Msg("quiz submitted")
		return out, nil
	})
	if err != nil {
		return quizdto.SubmitOutput{}, err
	}
	return v.(quizdto.SubmitOutput), nil
}
