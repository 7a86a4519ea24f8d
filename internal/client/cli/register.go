package cli

import (
	"context"
	"fmt"

	"studymate/internal/client/api"
)

// Register prompts for a username and a password entered twice. The
// mismatch check happens before any request; on success the user is
// pointed back to the login screen.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "用户名", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword("密码", a.out)
	if err != nil {
		return err
	}

	confirm, err := GetPassword("确认密码", a.out)
	if err != nil {
		return err
	}

	_, err = a.authService.Register(ctx, username, password, confirm)
	if err != nil {
		fmt.Fprintln(a.out, api.ErrorDetail(err, err.Error()))
		return nil
	}

	fmt.Fprintln(a.out, "注册成功，请登录")
	return nil
}
