// Package services contains the application services behind the CLI screens:
// authentication, profile editing, and knowledge-point management.
package services

import (
	"context"
	"errors"

	"studymate/internal/client/api"
	"studymate/internal/client/session"
)

var (
	// ErrEmptyCredentials is raised before any request when a login field is empty.
	ErrEmptyCredentials = errors.New("用户名和密码不能为空")

	// ErrPasswordMismatch is raised before any request when the two password
	// inputs of the registration form differ.
	ErrPasswordMismatch = errors.New("两次密码输入不一致")

	// ErrLoginRejected means the server answered without a usable user id.
	// An HTTP 2xx alone is not login success.
	ErrLoginRejected = errors.New("登录失败，请检查网络或服务器")

	// ErrRegisterRejected means the server answered without status "success".
	ErrRegisterRejected = errors.New("注册失败，请重试")
)

// AuthService handles login, registration, and the stored session.
type AuthService interface {
	// Login authenticates and persists the session. Success requires a
	// non-empty user_id in the response body.
	Login(ctx context.Context, username, password string) (*session.Session, error)

	// Register creates an account. The confirm check happens locally;
	// on mismatch no request is issued.
	Register(ctx context.Context, username, password, confirm string) (*api.RegisterResult, error)

	// Restore loads a previously stored session and installs its token.
	Restore() (*session.Session, error)

	// Logout clears the stored session. It does not call the server.
	Logout() error
}

type authService struct {
	client api.Client
	store  *session.Store
}

func NewAuthService(client api.Client, store *session.Store) AuthService {
	return &authService{client: client, store: store}
}

func (a *authService) Login(ctx context.Context, username, password string) (*session.Session, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	res, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if res.UserID == 0 {
		return nil, ErrLoginRejected
	}

	sess := session.Session{UserID: res.UserID, Token: res.Token}
	if err := a.store.Save(sess); err != nil {
		return nil, err
	}
	a.client.SetToken(sess.Token)
	return &sess, nil
}

func (a *authService) Register(ctx context.Context, username, password, confirm string) (*api.RegisterResult, error) {
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	res, err := a.client.Register(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if res.Status != "success" {
		return nil, ErrRegisterRejected
	}
	return res, nil
}

func (a *authService) Restore() (*session.Session, error) {
	sess, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	a.client.SetToken(sess.Token)
	return sess, nil
}

func (a *authService) Logout() error {
	a.client.SetToken("")
	return a.store.Clear()
}
