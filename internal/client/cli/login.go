package cli

import (
	"context"
	"fmt"

	"studymate/internal/client/api"
)

// Login prompts for credentials and authenticates. On success the session
// is installed and the profile screen is shown; on failure the server's
// detail message (or a generic fallback) is printed and the user stays
// where they were.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "用户名", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword("密码", a.out)
	if err != nil {
		return err
	}

	if username == "" || password == "" {
		fmt.Fprintln(a.out, "用户名和密码不能为空")
		return nil
	}

	fmt.Fprintln(a.out, "登录中...")
	sess, err := a.authService.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintln(a.out, api.ErrorDetail(err, "登录失败，请检查网络或服务器"))
		return nil
	}

	a.sess = sess
	fmt.Fprintln(a.out, "登录成功")

	// land on the profile screen, as after a successful form login
	return a.Profile(ctx)
}
