package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/auth-system/internal/client/api"
)

type fakeAPI struct {
	registerErr  error
	loginToken   string
	loginErr     error
	dashboardErr error
	gotToken     string
}

func (f *fakeAPI) Register(_ context.Context, _, _, _ string) (*api.RegisterResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &api.RegisterResponse{Message: "User registered successfully", UserID: "u1"}, nil
}

func (f *fakeAPI) Login(_ context.Context, _, _ string) (*api.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &api.LoginResponse{Token: f.loginToken, Message: "Login successful"}, nil
}

func (f *fakeAPI) Dashboard(_ context.Context, token string) (*api.DashboardResponse, error) {
	f.gotToken = token
	if f.dashboardErr != nil {
		return nil, f.dashboardErr
	}
	return &api.DashboardResponse{Message: "Welcome to the dashboard!", User: api.Profile{UserID: "u1", Email: "a@x.com"}}, nil
}

type memStore struct {
	token    string
	clearErr error
	saves    int
}

func (m *memStore) Load() (string, error) { return m.token, nil }
func (m *memStore) Save(t string) error   { m.token = t; m.saves++; return nil }
func (m *memStore) Clear() error {
	m.token = ""
	return m.clearErr
}

func newShell(t *testing.T, a *fakeAPI, st *memStore) *Shell {
	t.Helper()
	s, err := New(a, st, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestNew_RestoresState(t *testing.T) {
	s := newShell(t, &fakeAPI{}, &memStore{})
	assert.Equal(t, State{Status: Unauthenticated}, s.State())
	assert.Equal(t, ModeLogin, s.Mode())

	s = newShell(t, &fakeAPI{}, &memStore{token: "stored"})
	assert.Equal(t, State{Status: Authenticated, Token: "stored"}, s.State())
}

func TestLogin_PersistsAndAuthenticates(t *testing.T) {
	st := &memStore{}
	s := newShell(t, &fakeAPI{loginToken: "tkn"}, st)

	require.NoError(t, s.Login(context.Background(), "a@x.com", "secret1"))
	assert.Equal(t, State{Status: Authenticated, Token: "tkn"}, s.State())
	assert.Equal(t, "tkn", st.token)
}

func TestLogin_FailureKeepsUnauthenticated(t *testing.T) {
	st := &memStore{}
	s := newShell(t, &fakeAPI{loginErr: &api.Error{Status: http.StatusUnauthorized, Message: "Invalid credentials"}}, st)

	err := s.Login(context.Background(), "a@x.com", "bad")
	require.EqualError(t, err, "Invalid credentials")
	assert.Equal(t, Unauthenticated, s.State().Status)
	assert.Zero(t, st.saves)
}

func TestRegister_SwitchesToLoginWithoutAuthenticating(t *testing.T) {
	s := newShell(t, &fakeAPI{}, &memStore{})
	s.ToggleMode()
	require.Equal(t, ModeRegister, s.Mode())

	msg, err := s.Submit(context.Background(), Form{Username: "alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", msg)
	assert.Equal(t, ModeLogin, s.Mode())
	assert.Equal(t, Unauthenticated, s.State().Status)
}

func TestRegister_FailureStaysInRegisterMode(t *testing.T) {
	s := newShell(t, &fakeAPI{registerErr: &api.Error{Status: http.StatusBadRequest, Message: "User already exists"}}, &memStore{})
	s.ToggleMode()

	_, err := s.Submit(context.Background(), Form{Username: "alice", Email: "a@x.com", Password: "secret1"})
	require.EqualError(t, err, "User already exists")
	assert.Equal(t, ModeRegister, s.Mode())
}

func TestSubmit_LoginMode(t *testing.T) {
	s := newShell(t, &fakeAPI{loginToken: "tkn"}, &memStore{})

	_, err := s.Submit(context.Background(), Form{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, Authenticated, s.State().Status)
}

func TestMount_FetchesWithStoredToken(t *testing.T) {
	a := &fakeAPI{}
	s := newShell(t, a, &memStore{token: "stored"})

	resp, err := s.Mount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored", a.gotToken)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.Equal(t, Authenticated, s.State().Status)
}

func TestMount_FailureLogsOut(t *testing.T) {
	st := &memStore{token: "expired"}
	s := newShell(t, &fakeAPI{dashboardErr: &api.Error{Status: http.StatusUnauthorized, Message: "invalid token"}}, st)

	_, err := s.Mount(context.Background())
	require.EqualError(t, err, "invalid token")
	assert.Equal(t, State{Status: Unauthenticated}, s.State())
	assert.Empty(t, st.token)
}

func TestMount_NetworkFailureUsesSessionExpired(t *testing.T) {
	s := newShell(t, &fakeAPI{dashboardErr: errors.New("dial tcp: connection refused")}, &memStore{token: "tkn"})

	_, err := s.Mount(context.Background())
	require.EqualError(t, err, sessionExpiredMessage)
	assert.Equal(t, Unauthenticated, s.State().Status)
}

func TestMount_Unauthenticated(t *testing.T) {
	a := &fakeAPI{}
	s := newShell(t, a, &memStore{})

	resp, err := s.Mount(context.Background())
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Empty(t, a.gotToken)
}

func TestLogout_Unconditional(t *testing.T) {
	st := &memStore{token: "tkn", clearErr: errors.New("read-only fs")}
	s := newShell(t, &fakeAPI{}, st)

	err := s.Logout()
	require.Error(t, err)
	assert.Equal(t, State{Status: Unauthenticated}, s.State())
}
