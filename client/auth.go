package client

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Auth signs users in and out against the shared session
type Auth struct {
	client  *Client
	session Session
	logger  zerolog.Logger
}

func NewAuth(client *Client, session Session) *Auth {
	return &Auth{
		client:  client,
		session: session,
		logger:  log.With().Str("unit", "auth").Logger(),
	}
}

func (a *Auth) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	result, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.logger.Debug().Err(err).Msg("login failed")
		return nil, err
	}
	a.session.SignIn(&result.User, result.Token)
	return result, nil
}

func (a *Auth) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	result, err := a.client.Register(ctx, input)
	if err != nil {
		a.logger.Debug().Err(err).Msg("registration failed")
		return nil, err
	}
	a.session.SignIn(&result.User, result.Token)
	return result, nil
}

// Restore loads the profile for a session that has a token but no user.
// A rejected token clears the session.
func (a *Auth) Restore(ctx context.Context) error {
	token := a.session.Token()
	if token == "" || a.session.User() != nil {
		return nil
	}
	user, err := a.client.Profile(ctx)
	if err != nil {
		if StatusCode(err) == 401 {
			a.session.SignOut()
		}
		return err
	}
	a.session.SignIn(user, token)
	return nil
}

func (a *Auth) Logout() {
	a.session.SignOut()
}
