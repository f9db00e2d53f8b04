package in

import (
	"context"

	authdto "wellness/internal/modules/auth/dto"
	authin "wellness/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SignUp(ctx context.Context, email, password string) (authdto.SignUpOutput, error) {
	return h.usecase.SignUp(ctx, authdto.CredentialsInput{Email: email, Password: password})
}

func (h CLIHandler) SignIn(ctx context.Context, email, password string) (authdto.UserOutput, error) {
	return h.usecase.SignIn(ctx, authdto.CredentialsInput{Email: email, Password: password})
}

func (h CLIHandler) SignOut(ctx context.Context) error {
	return h.usecase.SignOut(ctx)
}

func (h CLIHandler) WhoAmI(ctx context.Context) (authdto.UserOutput, error) {
	return h.usecase.CurrentUser(ctx)
}

func (h CLIHandler) Subscribe(listener func(authdto.AuthEvent)) authin.Subscription {
	return h.usecase.Subscribe(listener)
}
