package cli

import (
	"context"
)

func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return report(err)
	}

	u, err := a.api.Register(ctx, userName, password)
	if err != nil {
		return report(err)
	}

	printlnFn("Registered", u.Username, "- you can log in now")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return report(err)
	}

	if err := a.api.Login(ctx, userName, password); err != nil {
		return report(err)
	}

	a.userName = userName
	printlnFn("Logged in as", userName)
	return nil
}

// Logout forgets the token. Tokens are not revocable server-side, so this
// is purely local.
func (a *App) Logout(ctx context.Context) error {
	a.api.SetToken("")
	a.userName = ""
	printlnFn("Logged out")
	return nil
}
