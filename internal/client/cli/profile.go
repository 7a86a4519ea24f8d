package cli

import (
	"context"
	"fmt"
	"strconv"

	"studymate/internal/client/api"
	"studymate/internal/client/models"
)

// Profile shows the user record and optionally walks through an edit of
// every field. The whole form, plus a newly chosen avatar, is submitted as
// one update; afterwards the record is reloaded from scratch.
func (a *App) Profile(ctx context.Context) error {
	if a.sess == nil {
		fmt.Fprintln(a.out, "请先登录")
		return a.Login(ctx)
	}

	fmt.Fprintln(a.out, "加载中...")
	profile, err := a.profileService.Load(ctx, a.sess.UserID)
	if err != nil {
		fmt.Fprintln(a.out, api.ErrorDetail(err, "获取用户信息失败，请重试"))
		return nil
	}

	a.renderProfile(profile)

	edit, err := Confirm(a.reader, "是否修改个人信息?", a.out)
	if err != nil {
		return err
	}
	if !edit {
		return nil
	}

	form, avatar, err := a.profileForm(profile)
	if err != nil {
		return err
	}

	updated, err := a.profileService.Save(ctx, a.sess.UserID, form, avatar)
	if err != nil {
		fmt.Fprintln(a.out, api.ErrorDetail(err, "更新信息失败，请重试"))
		return nil
	}

	fmt.Fprintln(a.out, "个人信息更新成功！")
	a.renderProfile(updated)
	return nil
}

func (a *App) renderProfile(p *models.UserProfile) {
	fmt.Fprintln(a.out, "—— 个人信息 ——")
	fmt.Fprintf(a.out, "用户名: %s\n", p.Username)

	avatar := a.profileService.AvatarURL(p.Avatar)
	if avatar == "" {
		avatar = "默认头像"
	}
	fmt.Fprintf(a.out, "头像: %s\n", avatar)
	fmt.Fprintf(a.out, "年级: %s\n", p.Grade)
	fmt.Fprintf(a.out, "考研届数: %s\n", p.PostgraduateSession)
	fmt.Fprintf(a.out, "学校: %s\n", p.School)
	fmt.Fprintf(a.out, "专业: %s\n", p.Major)
	fmt.Fprintf(a.out, "预期学校: %s\n", p.TargetSchool)
	fmt.Fprintf(a.out, "预期专业: %s\n", p.TargetMajor)
	if p.TargetScore > 0 {
		fmt.Fprintf(a.out, "预期分数: %.1f\n", p.TargetScore)
	} else {
		fmt.Fprintln(a.out, "预期分数:")
	}
}

// profileForm collects the full profile form seeded from the current
// record. The username is read-only and carried through unchanged.
func (a *App) profileForm(p *models.UserProfile) (api.ProfileForm, *api.AvatarFile, error) {
	var zero api.ProfileForm

	grade, err := GetChoice(a.reader, "年级", models.GradeOptions, p.Grade, a.out)
	if err != nil {
		return zero, nil, err
	}
	sessionYear, err := GetTextWithDefault(a.reader, "考研届数 (如：2026届)", p.PostgraduateSession, a.out)
	if err != nil {
		return zero, nil, err
	}
	school, err := GetTextWithDefault(a.reader, "就读学校", p.School, a.out)
	if err != nil {
		return zero, nil, err
	}
	major, err := GetTextWithDefault(a.reader, "就读专业", p.Major, a.out)
	if err != nil {
		return zero, nil, err
	}
	targetSchool, err := GetTextWithDefault(a.reader, "预期考研学校", p.TargetSchool, a.out)
	if err != nil {
		return zero, nil, err
	}
	targetMajor, err := GetTextWithDefault(a.reader, "预期考研专业", p.TargetMajor, a.out)
	if err != nil {
		return zero, nil, err
	}

	currentScore := ""
	if p.TargetScore > 0 {
		currentScore = strconv.FormatFloat(p.TargetScore, 'f', -1, 64)
	}
	targetScore, err := GetTextWithDefault(a.reader, "预期分数 (0-500)", currentScore, a.out)
	if err != nil {
		return zero, nil, err
	}

	form := api.ProfileForm{
		Username:            p.Username,
		Grade:               grade,
		PostgraduateSession: sessionYear,
		School:              school,
		Major:               major,
		TargetSchool:        targetSchool,
		TargetMajor:         targetMajor,
		TargetScore:         targetScore,
	}

	avatarPath, err := GetSimpleText(a.reader, "新头像图片路径 (回车跳过)", a.out)
	if err != nil {
		return zero, nil, err
	}
	if avatarPath == "" {
		return form, nil, nil
	}

	avatar, err := a.profileService.ReadAvatarFile(avatarPath)
	if err != nil {
		fmt.Fprintf(a.out, "读取头像失败: %v，将不更换头像\n", err)
		return form, nil, nil
	}

	// local preview before anything is uploaded
	fmt.Fprintf(a.out, "头像预览: %s (%d 字节)，将随保存一起上传\n", avatar.Name, len(avatar.Content))
	return form, avatar, nil
}
