// Package httpapi exposes the REST surface of the server: authentication,
// profile, knowledge points, and avatar assets.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"studymate/internal/common"
	"studymate/internal/server/services"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondDetail writes the error body shape every client of this API
// expects: {"detail": "..."}.
func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

// respondError maps service and sentinel errors to HTTP statuses. Anything
// unmapped is a 500 with a generic body: internals never leak to clients.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrWrongPassword):
		respondDetail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrMissingPoint),
		errors.Is(err, services.ErrInvalidSubject),
		errors.Is(err, services.ErrInvalidImportant),
		errors.Is(err, services.ErrInvalidDifficult),
		errors.Is(err, services.ErrInvalidGrade),
		errors.Is(err, services.ErrInvalidScore):
		respondDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		respondDetail(w, http.StatusBadRequest, "记录已存在")
	case errors.Is(err, common.ErrorNotFound):
		respondDetail(w, http.StatusNotFound, "记录不存在")
	case errors.Is(err, common.ErrorForbidden):
		respondDetail(w, http.StatusForbidden, "无权访问该资源")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		respondDetail(w, http.StatusUnauthorized, "请先登录")
	default:
		respondDetail(w, http.StatusInternalServerError, "服务器内部错误")
	}
}
