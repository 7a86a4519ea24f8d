package services

import "errors"

// The stored enum values. The backend validates independently of the
// client: any HTTP caller can hit the API directly.
var (
	subjects          = []string{"数据结构", "计算机组成原理", "操作系统", "计算机网络"}
	importanceOptions = []string{"低", "中", "高", "必考"}
	difficultyOptions = []string{"易", "较易", "中", "较难", "难"}
	gradeOptions      = []string{"大一", "大二", "大三", "大四", "已毕业"}
)

const (
	defaultImportance = "中"
	defaultDifficulty = "中"
)

var (
	ErrUserNotFound     = errors.New("用户名不存在")
	ErrWrongPassword    = errors.New("密码错误")
	ErrUsernameTaken    = errors.New("用户名已存在")
	ErrMissingPoint     = errors.New("请填写科目、知识点名称和分类")
	ErrInvalidSubject   = errors.New("无效的科目")
	ErrInvalidImportant = errors.New("无效的重要程度")
	ErrInvalidDifficult = errors.New("无效的难度")
	ErrInvalidGrade     = errors.New("无效的年级")
	ErrInvalidScore     = errors.New("预期分数必须在0到500之间")
)

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
