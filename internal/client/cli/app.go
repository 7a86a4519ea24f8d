// Package cli implements the interactive StudyMate client: a REPL whose
// commands correspond to the screens of the study assistant (login,
// registration, profile, knowledge-point management).
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"studymate/internal/client/api"
	"studymate/internal/client/config"
	"studymate/internal/client/models"
	"studymate/internal/client/services"
	"studymate/internal/client/session"
)

// App carries the per-run state of the CLI. The session value is threaded
// through the app explicitly: it is set on login/restore, cleared on logout,
// and never re-read from disk in between.
type App struct {
	config         *config.Config
	authService    services.AuthService
	profileService services.ProfileService
	pointService   services.PointService

	sess      *session.Session
	allPoints []models.KnowledgePoint
	filter    services.Filter

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	var store *session.Store
	var err error
	if c.SessionFile != "" {
		store = session.NewStore(c.SessionFile)
	} else {
		store, err = session.NewDefaultStore()
		if err != nil {
			return nil, err
		}
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL)

	return &App{
		config:         c,
		authService:    services.NewAuthService(apiClient, store),
		profileService: services.NewProfileService(apiClient),
		pointService:   services.NewPointService(apiClient),
		filter:         services.Filter{Subject: models.SubjectAll},
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.sess != nil
}

// Run restores any stored session and enters the REPL.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "欢迎使用学习助手 (输入 help 查看命令)")

	sess, err := a.authService.Restore()
	if err == nil {
		a.sess = sess
		fmt.Fprintf(a.out, "已恢复登录状态 (用户 %d)\n", sess.UserID)
	} else if !errors.Is(err, session.ErrNoSession) {
		fmt.Fprintf(a.out, "读取本地会话失败: %v\n", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	if a.sess == nil {
		return "未登录"
	}
	return fmt.Sprintf("用户 %d", a.sess.UserID)
}

// Logout clears the stored session. No server call is involved.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(); err != nil {
		return err
	}
	a.sess = nil
	a.allPoints = nil
	a.filter = services.Filter{Subject: models.SubjectAll}
	fmt.Fprintln(a.out, "已退出登录")
	return nil
}
