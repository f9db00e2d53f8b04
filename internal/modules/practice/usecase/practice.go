package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"wellness/internal/modules/practice/domain"
	practicedto "wellness/internal/modules/practice/dto"
	practicein "wellness/internal/modules/practice/port/in"
	practiceout "wellness/internal/modules/practice/port/out"
	"wellness/internal/modules/practice/service"
	applog "wellness/internal/platform/log"
)

type Interactor struct {
	svc      *service.SessionService
	identity practiceout.IdentityProvider
	inflight singleflight.Group
	log      zerolog.Logger
}

func NewInteractor(svc *service.SessionService, identity practiceout.IdentityProvider) practicein.Usecase {
	return &Interactor{svc: svc, identity: identity, log: applog.WithComponent("practice")}
}

// Save persists a finished session. Identical saves issued while one is still
// in flight share its result instead of inserting a duplicate row.
func (i *Interactor) Save(ctx context.Context, input practicedto.SaveInput) (practicedto.SaveOutput, error) {
	key := "save:" + strconv.Itoa(input.DurationSeconds) + ":" + input.EndedAt.Format(time.RFC3339Nano)
	v, err, shared := i.inflight.Do(key, func() (any, error) {
		owner, err := i.owner(ctx)
		if err != nil {
			return practicedto.SaveOutput{}, err
		}
		record, err := i.svc.Save(ctx, owner, input.EndedAt, input.DurationSeconds)
		if err != nil {
			i.log.Warn().Err(err).Int("duration", input.DurationSeconds).Bool("remote", owner != nil).Msg("session save failed")
			return practicedto.SaveOutput{}, err
		}
		i.log.Info().Int("duration", record.Duration).Bool("success", record.Success()).Bool("remote", owner != nil).Msg("session saved")
		return practicedto.SaveOutput{
			Date:            record.Date,
			DurationSeconds: record.Duration,
			Success:         record.Success(),
			Remote:          owner != nil,
		}, nil
	})
	if shared {
		i.log.Debug().Str("key", key).Msg("coalesced duplicate save")
	}
	if err != nil {
		return practicedto.SaveOutput{}, err
	}
	return v.(practicedto.SaveOutput), nil
}

func (i *Interactor) List(ctx context.Context) ([]practicedto.RecordOutput, error) {
	owner, err := i.owner(ctx)
	if err != nil {
		return nil, err
	}
	records, err := i.svc.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]practicedto.RecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, practicedto.RecordOutput{Date: r.Date, DurationSeconds: r.Duration, Success: r.Success()})
	}
	return out, nil
}

func (i *Interactor) Export(ctx context.Context, input practicedto.ExportInput) (practicedto.ExportOutput, error) {
	owner, err := i.owner(ctx)
	if err != nil {
		return practicedto.ExportOutput{}, err
	}
	records, err := i.svc.List(ctx, owner)
	if err != nil {
		return practicedto.ExportOutput{}, err
	}
	paths, err := i.svc.Export(ctx, input.Dir, records)
	if err != nil {
		return practicedto.ExportOutput{}, err
	}
	return practicedto.ExportOutput{Paths: paths}, nil
}

func (i *Interactor) owner(ctx context.Context) (*domain.Owner, error) {
	if i.identity == nil {
		return nil, nil
	}
	owner, ok, err := i.identity.CurrentOwner(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &owner, nil
}
