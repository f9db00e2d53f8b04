package usecase

import (
	"context"

	"wellness/internal/modules/auth/domain"
	authdto "wellness/internal/modules/auth/dto"
	authin "wellness/internal/modules/auth/port/in"
	"wellness/internal/modules/auth/service"
)

type Interactor struct {
	svc *service.AuthService
}

func NewInteractor(svc *service.AuthService) authin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) SignUp(ctx context.Context, input authdto.CredentialsInput) (authdto.SignUpOutput, error) {
	user, pending, err := i.svc.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		return authdto.SignUpOutput{}, err
	}
	return authdto.SignUpOutput{User: toUserOutput(user), ConfirmationRequired: pending}, nil
}

func (i *Interactor) SignIn(ctx context.Context, input authdto.CredentialsInput) (authdto.UserOutput, error) {
	user, err := i.svc.SignIn(ctx, input.Email, input.Password)
	if err != nil {
		return authdto.UserOutput{}, err
	}
	return toUserOutput(user), nil
}

func (i *Interactor) SignOut(ctx context.Context) error {
	return i.svc.SignOut(ctx)
}

func (i *Interactor) CurrentUser(ctx context.Context) (authdto.UserOutput, error) {
	user, err := i.svc.Verify(ctx)
	if err != nil {
		return authdto.UserOutput{}, err
	}
	return toUserOutput(user), nil
}

func (i *Interactor) CurrentSession(ctx context.Context) (authdto.SessionOutput, error) {
	session, err := i.svc.Current(ctx)
	if err != nil {
		return authdto.SessionOutput{}, err
	}
	return authdto.SessionOutput{User: toUserOutput(session.User), AccessToken: session.AccessToken}, nil
}

func (i *Interactor) Subscribe(listener func(authdto.AuthEvent)) authin.Subscription {
	return i.svc.Hub().Subscribe(func(event domain.Event) {
		out := authdto.AuthEvent{SignedIn: event.Kind == domain.SignedIn}
		if event.User != nil {
			u := toUserOutput(*event.User)
			out.User = &u
		}
		listener(out)
	})
}

func toUserOutput(user domain.User) authdto.UserOutput {
	return authdto.UserOutput{ID: user.ID, Email: user.Email}
}
