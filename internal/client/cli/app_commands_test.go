package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"studymate/internal/client/api"
	"studymate/internal/client/models"
	"studymate/internal/client/services"
	"studymate/internal/client/session"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

type fakeAuth struct {
	loginSess *session.Session
	loginErr  error
	loginUser string

	regResult *api.RegisterResult
	regErr    error
	regCalls  int

	logoutCalls int
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*session.Session, error) {
	f.loginUser = username
	return f.loginSess, f.loginErr
}
func (f *fakeAuth) Register(ctx context.Context, username, password, confirm string) (*api.RegisterResult, error) {
	f.regCalls++
	return f.regResult, f.regErr
}
func (f *fakeAuth) Restore() (*session.Session, error) { return nil, session.ErrNoSession }
func (f *fakeAuth) Logout() error                      { f.logoutCalls++; return nil }

type fakeProfile struct {
	profile  *models.UserProfile
	loadErr  error
	saveForm api.ProfileForm
	saveErr  error
}

func (f *fakeProfile) Load(ctx context.Context, userID int64) (*models.UserProfile, error) {
	return f.profile, f.loadErr
}
func (f *fakeProfile) Save(ctx context.Context, userID int64, form api.ProfileForm, avatar *api.AvatarFile) (*models.UserProfile, error) {
	f.saveForm = form
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return f.profile, nil
}
func (f *fakeProfile) ReadAvatarFile(path string) (*api.AvatarFile, error) {
	return &api.AvatarFile{Name: path, Content: []byte("img")}, nil
}
func (f *fakeProfile) AvatarURL(path string) string { return path }

type fakePoints struct {
	points    []models.KnowledgePoint
	listCalls int
	listCtx   context.Context
	listErr   error

	created     *api.PointForm
	updatedID   int64
	updatedForm *api.PointForm
	deletedID   int64
	delCalls    int
}

func (f *fakePoints) List(ctx context.Context, userID int64) ([]models.KnowledgePoint, error) {
	f.listCalls++
	f.listCtx = ctx
	return f.points, f.listErr
}
func (f *fakePoints) Create(ctx context.Context, userID int64, form api.PointForm) (*models.KnowledgePoint, error) {
	f.created = &form
	return &models.KnowledgePoint{KpID: 99, OwnerID: userID}, nil
}
func (f *fakePoints) Update(ctx context.Context, kpID int64, form api.PointForm) (*models.KnowledgePoint, error) {
	f.updatedID = kpID
	f.updatedForm = &form
	return &models.KnowledgePoint{KpID: kpID}, nil
}
func (f *fakePoints) Delete(ctx context.Context, kpID int64) error {
	f.delCalls++
	f.deletedID = kpID
	return nil
}
func (f *fakePoints) Detail(ctx context.Context, kpID int64) (*models.KnowledgePoint, error) {
	for i := range f.points {
		if f.points[i].KpID == kpID {
			return &f.points[i], nil
		}
	}
	return nil, f.listErr
}

func newTestApp(r *bufio.Reader, out *bytes.Buffer) (*App, *fakeAuth, *fakeProfile, *fakePoints) {
	auth := &fakeAuth{}
	profile := &fakeProfile{profile: &models.UserProfile{ID: 7, Username: "zhangsan", Grade: "大三"}}
	points := &fakePoints{}
	a := &App{
		authService:    auth,
		profileService: profile,
		pointService:   points,
		filter:         services.Filter{Subject: models.SubjectAll},
		reader:         r,
		out:            out,
	}
	return a, auth, profile, points
}

func samplePoint() models.KnowledgePoint {
	return models.KnowledgePoint{
		KpID:       1,
		OwnerID:    7,
		Subject:    "操作系统",
		PointName:  "进程调度",
		Category:   "调度算法",
		Importance: "高",
		Difficulty: "难",
		Content:    "时间片轮转、优先级调度",
	}
}

// ------------ tests ------------

func TestLogin_MissingUserIDKeepsLoggedOut(t *testing.T) {
	var out bytes.Buffer
	a, auth, _, _ := newTestApp(readerFromLines("zhangsan", ""), &out)
	auth.loginErr = services.ErrLoginRejected

	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("pw"), nil }
	defer func() { readPassword = old }()

	err := a.Login(context.Background())
	require.NoError(t, err)
	require.Nil(t, a.sess)
	require.Contains(t, out.String(), "登录失败，请检查网络或服务器")
}

func TestLogin_SuccessShowsProfile(t *testing.T) {
	var out bytes.Buffer
	// the blank line answers the edit-confirmation on the profile screen
	a, auth, _, _ := newTestApp(readerFromLines("zhangsan", "", ""), &out)
	auth.loginSess = &session.Session{UserID: 7, Token: "tok"}

	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("pw"), nil }
	defer func() { readPassword = old }()

	err := a.Login(context.Background())
	require.NoError(t, err)
	require.NotNil(t, a.sess)
	require.Equal(t, int64(7), a.sess.UserID)
	require.Contains(t, out.String(), "登录成功")
	require.Contains(t, out.String(), "个人信息")
	require.Contains(t, out.String(), "zhangsan")
}

func TestRegister_MismatchMessageShown(t *testing.T) {
	var out bytes.Buffer
	a, auth, _, _ := newTestApp(readerFromLines("zhangsan"), &out)
	auth.regErr = services.ErrPasswordMismatch

	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("pw"), nil }
	defer func() { readPassword = old }()

	err := a.Register(context.Background())
	require.NoError(t, err)
	require.Contains(t, out.String(), "两次密码输入不一致")
}

func TestRegister_Success(t *testing.T) {
	var out bytes.Buffer
	a, auth, _, _ := newTestApp(readerFromLines("zhangsan"), &out)
	auth.regResult = &api.RegisterResult{Status: "success"}

	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("pw"), nil }
	defer func() { readPassword = old }()

	err := a.Register(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, auth.regCalls)
	require.Contains(t, out.String(), "注册成功，请登录")
}

func TestList_RendersFilteredPoints(t *testing.T) {
	var out bytes.Buffer
	a, _, _, points := newTestApp(readerFromLines(), &out)
	a.sess = &session.Session{UserID: 7}
	points.points = []models.KnowledgePoint{
		samplePoint(),
		{KpID: 2, OwnerID: 7, Subject: "计算机网络", PointName: "TCP拥塞控制", Category: "传输层"},
	}
	a.filter.Subject = "操作系统"

	err := a.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, points.listCalls)
	require.Contains(t, out.String(), "进程调度")
	require.NotContains(t, out.String(), "TCP拥塞控制")
}

func TestList_EmptyState(t *testing.T) {
	var out bytes.Buffer
	a, _, _, _ := newTestApp(readerFromLines(), &out)
	a.sess = &session.Session{UserID: 7}

	err := a.List(context.Background())
	require.NoError(t, err)
	require.Contains(t, out.String(), "暂无知识点数据")
}

func TestSetSubject_NoNetworkCall(t *testing.T) {
	var out bytes.Buffer
	a, _, _, points := newTestApp(readerFromLines("1"), &out)
	a.sess = &session.Session{UserID: 7}
	a.allPoints = []models.KnowledgePoint{samplePoint()}

	err := a.SetSubject(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, points.listCalls)
	require.Equal(t, models.SubjectAll, a.filter.Subject)
}

func TestSearch_FiltersLocally(t *testing.T) {
	var out bytes.Buffer
	a, _, _, points := newTestApp(readerFromLines("进程"), &out)
	a.sess = &session.Session{UserID: 7}
	a.allPoints = []models.KnowledgePoint{
		samplePoint(),
		{KpID: 2, OwnerID: 7, Subject: "操作系统", PointName: "死锁", Category: "并发"},
	}

	err := a.Search(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, points.listCalls)
	require.Equal(t, "进程", a.filter.SearchTerm)
	require.Contains(t, out.String(), "进程调度")
	require.NotContains(t, out.String(), "死锁")
}

func TestAdd_RefreshesListOnSuccess(t *testing.T) {
	var out bytes.Buffer
	a, _, _, points := newTestApp(readerFromLines(
		"1",      // subject: 数据结构
		"二叉树遍历",  // name
		"树与二叉树",  // category
		"",       // importance, keep default 中
		"",       // difficulty, keep default 中
		"选择题",    // exam points
		"先序中序后序", // content line 1
		"",       // end of multiline
	), &out)
	a.sess = &session.Session{UserID: 7}

	err := a.Add(context.Background())
	require.NoError(t, err)
	require.NotNil(t, points.created)
	require.Equal(t, "数据结构", points.created.Subject)
	require.Equal(t, "二叉树遍历", points.created.PointName)
	require.Equal(t, "中", points.created.Importance)
	require.Equal(t, "中", points.created.Difficulty)
	require.Equal(t, 1, points.listCalls)
	require.Contains(t, out.String(), "创建成功")
}

func TestEdit_SubmitsFullRecord(t *testing.T) {
	var out bytes.Buffer
	a, _, _, points := newTestApp(readerFromLines(
		"1",    // kp id
		"",     // subject unchanged
		"",     // name unchanged
		"",     // category unchanged
		"必考",   // importance changed
		"",     // difficulty unchanged
		"",     // exam points unchanged
		"",     // content: empty keeps old
	), &out)
	a.sess = &session.Session{UserID: 7}
	a.allPoints = []models.KnowledgePoint{samplePoint()}
	points.points = a.allPoints

	err := a.Edit(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), points.updatedID)
	require.NotNil(t, points.updatedForm)
	require.Equal(t, "必考", points.updatedForm.Importance)
	require.Equal(t, "进程调度", points.updatedForm.PointName)
	require.Equal(t, "难", points.updatedForm.Difficulty)
	require.Equal(t, "时间片轮转、优先级调度", points.updatedForm.Content)
}

func TestDelete_CancelIssuesNoCall(t *testing.T) {
	var out bytes.Buffer
	a, _, _, points := newTestApp(readerFromLines("1", "n"), &out)
	a.sess = &session.Session{UserID: 7}
	a.allPoints = []models.KnowledgePoint{samplePoint()}

	err := a.Delete(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, points.delCalls)
	require.Contains(t, out.String(), "已取消")
}

func TestDelete_ConfirmedRemovesAndRefreshes(t *testing.T) {
	var out bytes.Buffer
	a, _, _, points := newTestApp(readerFromLines("1", "y"), &out)
	a.sess = &session.Session{UserID: 7}
	a.allPoints = []models.KnowledgePoint{samplePoint()}

	err := a.Delete(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, points.delCalls)
	require.Equal(t, int64(1), points.deletedID)
	require.Equal(t, 1, points.listCalls)
	require.Contains(t, out.String(), "删除成功")
}

func TestShow_PrintsFullContent(t *testing.T) {
	var out bytes.Buffer
	a, _, _, points := newTestApp(readerFromLines("1"), &out)
	a.sess = &session.Session{UserID: 7}
	a.allPoints = []models.KnowledgePoint{samplePoint()}
	points.points = a.allPoints

	err := a.Show(context.Background())
	require.NoError(t, err)
	require.Contains(t, out.String(), "详细内容")
	require.Contains(t, out.String(), "时间片轮转、优先级调度")
}

func TestShow_LazyListLoadKeepsCommandContext(t *testing.T) {
	var out bytes.Buffer
	a, _, _, points := newTestApp(readerFromLines("1"), &out)
	a.sess = &session.Session{UserID: 7}
	points.points = []models.KnowledgePoint{samplePoint()}

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "cmd")

	err := a.Show(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, points.listCalls)
	require.Equal(t, "cmd", points.listCtx.Value(ctxKey{}))
}

func TestProfile_EditDeclined(t *testing.T) {
	var out bytes.Buffer
	a, _, _, _ := newTestApp(readerFromLines("n"), &out)
	a.sess = &session.Session{UserID: 7}

	err := a.Profile(context.Background())
	require.NoError(t, err)
	require.Contains(t, out.String(), "zhangsan")
	require.NotContains(t, out.String(), "个人信息更新成功")
}

func TestProfile_EditSavesForm(t *testing.T) {
	var out bytes.Buffer
	a, _, profile, _ := newTestApp(readerFromLines(
		"y",      // edit
		"4",      // grade: 大四
		"2027届",  // session
		"某大学",    // school
		"计算机",    // major
		"清华大学",   // target school
		"计算机科学",  // target major
		"380",    // target score
		"",       // no new avatar
		"",
	), &out)
	a.sess = &session.Session{UserID: 7}

	err := a.Profile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "大四", profile.saveForm.Grade)
	require.Equal(t, "2027届", profile.saveForm.PostgraduateSession)
	require.Equal(t, "380", profile.saveForm.TargetScore)
	require.Equal(t, "zhangsan", profile.saveForm.Username)
	require.Contains(t, out.String(), "个人信息更新成功！")
}

func TestLogout_ClearsState(t *testing.T) {
	var out bytes.Buffer
	a, auth, _, _ := newTestApp(readerFromLines(), &out)
	a.sess = &session.Session{UserID: 7}
	a.allPoints = []models.KnowledgePoint{samplePoint()}
	a.filter = services.Filter{Subject: "操作系统", SearchTerm: "进程"}

	err := a.Logout(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, auth.logoutCalls)
	require.Nil(t, a.sess)
	require.Empty(t, a.allPoints)
	require.Equal(t, models.SubjectAll, a.filter.Subject)
	require.Empty(t, a.filter.SearchTerm)
}
