package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studymate/internal/client/api"
	"studymate/internal/client/session"
)

func tempSessionStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestAuthService_Login_Success(t *testing.T) {
	client := &stubClient{loginResult: &api.LoginResult{UserID: 7, Token: "tok-7", Message: "Login successful"}}
	store := tempSessionStore(t)
	svc := NewAuthService(client, store)

	sess, err := svc.Login(context.Background(), "zhang", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(7), sess.UserID)
	assert.Equal(t, "tok-7", client.token, "token must be installed on the api client")

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(7), saved.UserID)
}

func TestAuthService_Login_MissingUserID(t *testing.T) {
	// HTTP 2xx without user_id must not create a session
	client := &stubClient{loginResult: &api.LoginResult{Message: "ok"}}
	store := tempSessionStore(t)
	svc := NewAuthService(client, store)

	_, err := svc.Login(context.Background(), "zhang", "pw")
	require.ErrorIs(t, err, ErrLoginRejected)

	_, err = store.Load()
	require.ErrorIs(t, err, session.ErrNoSession)
	assert.Empty(t, client.token)
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	client := &stubClient{}
	svc := NewAuthService(client, tempSessionStore(t))

	_, err := svc.Login(context.Background(), "", "pw")
	require.ErrorIs(t, err, ErrEmptyCredentials)
	_, err = svc.Login(context.Background(), "zhang", "")
	require.ErrorIs(t, err, ErrEmptyCredentials)
	assert.Zero(t, client.loginCalls, "no request may be issued for empty fields")
}

func TestAuthService_Login_ServerError(t *testing.T) {
	client := &stubClient{loginErr: &api.APIError{StatusCode: 401, Detail: "密码错误"}}
	store := tempSessionStore(t)
	svc := NewAuthService(client, store)

	_, err := svc.Login(context.Background(), "zhang", "bad")
	assert.Equal(t, "密码错误", api.ErrorDetail(err, "登录失败"))

	_, err = store.Load()
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	client := &stubClient{}
	svc := NewAuthService(client, tempSessionStore(t))

	_, err := svc.Register(context.Background(), "zhang", "a", "b")
	require.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Equal(t, "两次密码输入不一致", err.Error())
	assert.Zero(t, client.registerCalls, "mismatch must be caught before any network call")
}

func TestAuthService_Register_Success(t *testing.T) {
	client := &stubClient{registerResult: &api.RegisterResult{Status: "success", UserID: 3}}
	svc := NewAuthService(client, tempSessionStore(t))

	res, err := svc.Register(context.Background(), "zhang", "pw", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.UserID)
	assert.Equal(t, 1, client.registerCalls)
}

func TestAuthService_Register_StatusNotSuccess(t *testing.T) {
	client := &stubClient{registerResult: &api.RegisterResult{Status: "error", Message: "bad"}}
	svc := NewAuthService(client, tempSessionStore(t))

	_, err := svc.Register(context.Background(), "zhang", "pw", "pw")
	require.ErrorIs(t, err, ErrRegisterRejected)
}

func TestAuthService_RestoreAndLogout(t *testing.T) {
	client := &stubClient{}
	store := tempSessionStore(t)
	require.NoError(t, store.Save(session.Session{UserID: 9, Token: "tok-9"}))

	svc := NewAuthService(client, store)

	sess, err := svc.Restore()
	require.NoError(t, err)
	assert.Equal(t, int64(9), sess.UserID)
	assert.Equal(t, "tok-9", client.token)

	require.NoError(t, svc.Logout())
	assert.Empty(t, client.token)
	_, err = store.Load()
	require.ErrorIs(t, err, session.ErrNoSession)
}
