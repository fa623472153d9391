// Package session holds the client's authentication state. The shell is
// either Unauthenticated or Authenticated with a token, and only the
// methods below move it between the two.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-system/internal/client/api"
	"github.com/99minutos/auth-system/internal/client/storage"
)

// Status is the authentication state driving what the UI renders.
type Status int

const (
	Unauthenticated Status = iota
	Authenticated
)

func (s Status) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// State is Unauthenticated or Authenticated{Token}.
type State struct {
	Status Status
	Token  string
}

// Mode selects what the unauthenticated form submits.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

func (m Mode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

const (
	sessionExpiredMessage = "Session expired"
	registeredMessage     = "Success! You can now login."
)

// API is the subset of the HTTP client the shell needs.
type API interface {
	Register(ctx context.Context, username, email, password string) (*api.RegisterResponse, error)
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	Dashboard(ctx context.Context, token string) (*api.DashboardResponse, error)
}

// Form is the content of the login/register form.
type Form struct {
	Username string
	Email    string
	Password string
}

// Shell is the client session state machine.
type Shell struct {
	mu    sync.Mutex
	api   API
	store storage.TokenStore
	log   zerolog.Logger

	state State
	mode  Mode
}

// New restores any persisted token; a non-empty token means Authenticated.
func New(client API, store storage.TokenStore, log zerolog.Logger) (*Shell, error) {
	tkn, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}

	s := &Shell{api: client, store: store, log: log, mode: ModeLogin}
	if tkn != "" {
		s.state = State{Status: Authenticated, Token: tkn}
	}
	return s, nil
}

func (s *Shell) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Shell) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// ToggleMode flips the form between login and register.
func (s *Shell) ToggleMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeLogin {
		s.mode = ModeRegister
	} else {
		s.mode = ModeLogin
	}
}

// Submit sends the form according to the current mode. It returns a notice
// for the user on success.
func (s *Shell) Submit(ctx context.Context, f Form) (string, error) {
	if s.Mode() == ModeRegister {
		return s.Register(ctx, f.Username, f.Email, f.Password)
	}
	if err := s.Login(ctx, f.Email, f.Password); err != nil {
		return "", err
	}
	return "", nil
}

// Register creates the account and switches the form to login. It never
// authenticates.
func (s *Shell) Register(ctx context.Context, username, email, password string) (string, error) {
	resp, err := s.api.Register(ctx, username, email, password)
	if err != nil {
		return "", userError(err, api.FallbackMessage)
	}

	s.mu.Lock()
	s.mode = ModeLogin
	s.mu.Unlock()

	if resp.Message != "" {
		return resp.Message, nil
	}
	return registeredMessage, nil
}

// Login authenticates, persists the token and transitions to Authenticated.
func (s *Shell) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return userError(err, api.FallbackMessage)
	}
	if resp.Token == "" {
		return errors.New(api.FallbackMessage)
	}

	if err := s.store.Save(resp.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	s.mu.Lock()
	s.state = State{Status: Authenticated, Token: resp.Token}
	s.mu.Unlock()
	return nil
}

// Mount fetches the profile for the stored token. Any failure logs the
// session out and returns the message to surface.
func (s *Shell) Mount(ctx context.Context) (*api.DashboardResponse, error) {
	st := s.State()
	if st.Status != Authenticated {
		return nil, nil
	}

	resp, err := s.api.Dashboard(ctx, st.Token)
	if err != nil {
		s.log.Debug().Err(err).Msg("dashboard fetch failed, logging out")
		if lerr := s.Logout(); lerr != nil {
			s.log.Warn().Err(lerr).Msg("failed to clear token")
		}
		return nil, userError(err, sessionExpiredMessage)
	}
	return resp, nil
}

// Logout clears durable storage and always ends Unauthenticated. A storage
// failure is returned but does not keep the session alive.
func (s *Shell) Logout() error {
	err := s.store.Clear()

	s.mu.Lock()
	s.state = State{Status: Unauthenticated}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// userError picks the server's message when there is one and the fallback
// for transport failures.
func userError(err error, fallback string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != api.FallbackMessage {
		return errors.New(apiErr.Message)
	}
	return errors.New(fallback)
}
