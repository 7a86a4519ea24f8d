package cli

import (
	"context"
	"fmt"
	"strconv"

	"studymate/internal/client/api"
	"studymate/internal/client/models"
)

// refresh refetches the whole point list for the current user. Local state
// is never patched incrementally: every mutation ends here.
func (a *App) refresh(ctx context.Context) error {
	points, err := a.pointService.List(ctx, a.sess.UserID)
	if err != nil {
		return err
	}
	a.allPoints = points
	return nil
}

// List fetches all points and renders the ones matching the current filter.
func (a *App) List(ctx context.Context) error {
	if err := a.refresh(ctx); err != nil {
		fmt.Fprintln(a.out, api.ErrorDetail(err, "加载知识点失败，请稍后重试"))
		return nil
	}
	a.renderVisible()
	return nil
}

func (a *App) renderVisible() {
	visible := a.filter.Apply(a.allPoints)

	fmt.Fprintf(a.out, "—— 知识点 (%s", a.filter.Subject)
	if a.filter.SearchTerm != "" {
		fmt.Fprintf(a.out, ", 搜索: %s", a.filter.SearchTerm)
	}
	fmt.Fprintf(a.out, ") %d/%d 条 ——\n", len(visible), len(a.allPoints))

	if len(visible) == 0 {
		fmt.Fprintln(a.out, "暂无知识点数据")
		return
	}

	for _, kp := range visible {
		a.renderPoint(kp)
	}
}

func (a *App) renderPoint(kp models.KnowledgePoint) {
	importance := colorize(kp.Importance, models.ImportanceColor(kp.Importance))
	difficulty := colorize(kp.Difficulty, models.DifficultyColor(kp.Difficulty))

	fmt.Fprintf(a.out, "[%d] %s · %s (分类: %s) 重要度: %s 难度: %s\n",
		kp.KpID, kp.Subject, kp.PointName, kp.Category, importance, difficulty)
	if kp.ExamPoints != "" {
		fmt.Fprintf(a.out, "    考点: %s\n", kp.ExamPoints)
	}
	if preview := models.ContentPreview(kp.Content); preview != "" {
		fmt.Fprintf(a.out, "    %s\n", preview)
	}
	if kp.CreateTime != "" {
		fmt.Fprintf(a.out, "    创建于: %s\n", kp.CreateTime)
	}
}

// SetSubject changes the local subject filter and re-renders. No request
// is issued: filtering always works on the already fetched set.
func (a *App) SetSubject(ctx context.Context) error {
	options := append([]string{models.SubjectAll}, models.Subjects...)
	subject, err := GetChoice(a.reader, "科目筛选", options, a.filter.Subject, a.out)
	if err != nil {
		return err
	}
	a.filter.Subject = subject
	a.renderVisible()
	return nil
}

// Search changes the local search term and re-renders. An empty input
// clears the restriction.
func (a *App) Search(ctx context.Context) error {
	term, err := GetSimpleText(a.reader, "搜索知识点名称或分类 (回车清除)", a.out)
	if err != nil {
		return err
	}
	a.filter.SearchTerm = term
	a.renderVisible()
	return nil
}

// pointForm collects the knowledge-point form. seed carries the defaults:
// a fresh form for add, the current record for edit.
func (a *App) pointForm(seed api.PointForm) (api.PointForm, error) {
	var zero api.PointForm

	subject, err := GetChoice(a.reader, "科目 *", models.Subjects, seed.Subject, a.out)
	if err != nil {
		return zero, err
	}
	name, err := GetTextWithDefault(a.reader, "知识点名称 * (如：二叉树遍历)", seed.PointName, a.out)
	if err != nil {
		return zero, err
	}
	category, err := GetTextWithDefault(a.reader, "分类 * (如：树与二叉树)", seed.Category, a.out)
	if err != nil {
		return zero, err
	}
	importance, err := GetChoice(a.reader, "重要度", models.ImportanceOptions, seed.Importance, a.out)
	if err != nil {
		return zero, err
	}
	difficulty, err := GetChoice(a.reader, "难度", models.DifficultyOptions, seed.Difficulty, a.out)
	if err != nil {
		return zero, err
	}
	examPoints, err := GetTextWithDefault(a.reader, "考点 (如：选择题、计算题)", seed.ExamPoints, a.out)
	if err != nil {
		return zero, err
	}
	content, err := GetMultiline(a.reader, "详细内容", a.out)
	if err != nil {
		return zero, err
	}
	if content == "" {
		content = seed.Content
	}

	return api.PointForm{
		Subject:    subject,
		PointName:  name,
		Category:   category,
		Importance: importance,
		Difficulty: difficulty,
		ExamPoints: examPoints,
		Content:    content,
	}, nil
}

// Add creates a new point from a form pre-populated with the defaults and
// refreshes the whole list on success.
func (a *App) Add(ctx context.Context) error {
	form, err := a.pointForm(api.PointForm{
		Importance: models.DefaultImportance,
		Difficulty: models.DefaultDifficulty,
	})
	if err != nil {
		return err
	}

	if _, err := a.pointService.Create(ctx, a.sess.UserID, form); err != nil {
		fmt.Fprintln(a.out, api.ErrorDetail(err, "操作失败，请稍后重试"))
		return nil
	}

	fmt.Fprintln(a.out, "创建成功")
	return a.List(ctx)
}

// Edit updates an existing point with a form seeded from its current
// values. The whole record is submitted; kp_id and owner stay untouched.
func (a *App) Edit(ctx context.Context) error {
	kp, err := a.pickPoint(ctx, "要编辑的知识点编号")
	if err != nil || kp == nil {
		return err
	}

	form, err := a.pointForm(api.PointForm{
		Subject:    kp.Subject,
		PointName:  kp.PointName,
		Category:   kp.Category,
		Importance: kp.Importance,
		Difficulty: kp.Difficulty,
		ExamPoints: kp.ExamPoints,
		Content:    kp.Content,
	})
	if err != nil {
		return err
	}

	if _, err := a.pointService.Update(ctx, kp.KpID, form); err != nil {
		fmt.Fprintln(a.out, api.ErrorDetail(err, "操作失败，请稍后重试"))
		return nil
	}

	fmt.Fprintln(a.out, "更新成功")
	return a.List(ctx)
}

// Delete removes a point after an explicit confirmation. Cancelling issues
// no request and leaves the list untouched.
func (a *App) Delete(ctx context.Context) error {
	kp, err := a.pickPoint(ctx, "要删除的知识点编号")
	if err != nil || kp == nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("确定要删除知识点「%s」吗?", kp.PointName), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "已取消")
		return nil
	}

	if err := a.pointService.Delete(ctx, kp.KpID); err != nil {
		fmt.Fprintln(a.out, api.ErrorDetail(err, "删除失败，请稍后重试"))
		return nil
	}

	fmt.Fprintln(a.out, "删除成功")
	return a.List(ctx)
}

// Show fetches and renders one record in full via the detail endpoint.
func (a *App) Show(ctx context.Context) error {
	kp, err := a.pickPoint(ctx, "要查看的知识点编号")
	if err != nil || kp == nil {
		return err
	}

	detail, err := a.pointService.Detail(ctx, kp.KpID)
	if err != nil {
		fmt.Fprintln(a.out, api.ErrorDetail(err, "获取知识点详情失败"))
		return nil
	}

	a.renderPoint(*detail)
	if detail.Content != "" {
		fmt.Fprintf(a.out, "详细内容:\n%s\n", detail.Content)
	}
	return nil
}

// pickPoint resolves a user-entered kp id against the fetched list,
// loading the list first when needed. Returns nil without error when the
// id is unknown.
func (a *App) pickPoint(ctx context.Context, prompt string) (*models.KnowledgePoint, error) {
	if len(a.allPoints) == 0 {
		if err := a.refresh(ctx); err != nil {
			fmt.Fprintln(a.out, api.ErrorDetail(err, "加载知识点失败，请稍后重试"))
			return nil, nil
		}
	}

	text, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "无效的编号")
		return nil, nil
	}

	for i := range a.allPoints {
		if a.allPoints[i].KpID == id {
			return &a.allPoints[i], nil
		}
	}
	fmt.Fprintln(a.out, "找不到该编号的知识点")
	return nil, nil
}
