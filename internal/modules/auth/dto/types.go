package dto

type CredentialsInput struct {
	Email    string
	Password string
}

type UserOutput struct {
	ID    string
	Email string
}

type SignUpOutput struct {
	User UserOutput
	// ConfirmationRequired is set when the backend wants the email confirmed
	// before the first sign-in.
	ConfirmationRequired bool
}

type SessionOutput struct {
	User        UserOutput
	AccessToken string
}

type AuthEvent struct {
	SignedIn bool
	User     *UserOutput
}
