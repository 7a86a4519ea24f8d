package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"studymate/internal/common"
	"studymate/internal/logging"
	"studymate/internal/server/models"
	"studymate/internal/server/services"
	"studymate/internal/server/storage"
)

// UserService is the slice of the user service the handlers need.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.UserLogin, error)
	Login(ctx context.Context, username, password string) (int64, string, error)
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, update services.ProfileUpdate, avatar *services.AvatarUpload) (*models.UserProfile, error)
}

// PointService is the slice of the point service the handlers need.
type PointService interface {
	List(ctx context.Context, ownerID int64, subject string) ([]models.KnowledgePoint, error)
	Create(ctx context.Context, ownerID int64, input services.PointInput) (*models.KnowledgePoint, error)
	Update(ctx context.Context, kpID, ownerID int64, input services.PointInput) (*models.KnowledgePoint, error)
	Delete(ctx context.Context, kpID, ownerID int64) error
	Detail(ctx context.Context, kpID, ownerID int64) (*models.KnowledgePoint, error)
}

type Handler struct {
	users  UserService
	points PointService
	store  storage.AvatarStore
	logger logging.Logger
	secret []byte
}

func NewHandler(users UserService, points PointService, store storage.AvatarStore, logger logging.Logger, secret []byte) *Handler {
	return &Handler{users: users, points: points, store: store, logger: logger, secret: secret}
}

// NewRouter wires every endpoint. Auth endpoints and the health check are
// public; everything else requires a valid bearer token.
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)

	router.HandleFunc("/", h.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/login", h.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/register", h.RegisterHandler).Methods(http.MethodPost)

	router.HandleFunc("/profile/{userId:[0-9]+}", h.AuthMiddleware(h.GetProfileHandler)).Methods(http.MethodGet)
	router.HandleFunc("/profile/{userId:[0-9]+}", h.AuthMiddleware(h.UpdateProfileHandler)).Methods(http.MethodPut)

	router.HandleFunc("/knowledge-points/detail/{kpId:[0-9]+}", h.AuthMiddleware(h.PointDetailHandler)).Methods(http.MethodGet)
	router.HandleFunc("/knowledge-points/{userId:[0-9]+}", h.AuthMiddleware(h.ListPointsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/knowledge-points", h.AuthMiddleware(h.CreatePointHandler)).Methods(http.MethodPost)
	router.HandleFunc("/knowledge-points/{kpId:[0-9]+}", h.AuthMiddleware(h.UpdatePointHandler)).Methods(http.MethodPut)
	router.HandleFunc("/knowledge-points/{kpId:[0-9]+}", h.AuthMiddleware(h.DeletePointHandler)).Methods(http.MethodDelete)

	router.HandleFunc("/static/{key:avatars/.+}", h.AvatarHandler).Methods(http.MethodGet)

	return router
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondDetail(w, http.StatusBadRequest, "用户名和密码不能为空")
		return
	}

	userID, token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info(r.Context(), "login rejected", "username", req.Username, "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "登录成功",
		"user_id": userID,
		"token":   token,
	})
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondDetail(w, http.StatusBadRequest, "用户名和密码不能为空")
		return
	}

	login, err := h.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "user_id", login.ID)
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "注册成功",
		"user_id": login.ID,
	})
}

// pathUser extracts the {userId} path variable and checks it against the
// authenticated user. Reading or writing somebody else's data is forbidden
// even with a valid token.
func pathUser(r *http.Request) (int64, error) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	authID, ok := userIDFrom(r.Context())
	if !ok {
		return 0, common.ErrorUnauthorized
	}
	if authID != userID {
		return 0, common.ErrorForbidden
	}
	return userID, nil
}

func (h *Handler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toProfileDTO(profile))
}

// maxAvatarSize caps the multipart form memory of a profile update.
const maxAvatarSize = 8 << 20

func (h *Handler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		respondDetail(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	update := services.ProfileUpdate{
		Grade:               r.FormValue("grade"),
		PostgraduateSession: r.FormValue("postgraduate_session"),
		School:              r.FormValue("school"),
		Major:               r.FormValue("major"),
		TargetSchool:        r.FormValue("target_school"),
		TargetMajor:         r.FormValue("target_major"),
	}

	if raw := r.FormValue("target_score"); raw != "" {
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, services.ErrInvalidScore)
			return
		}
		update.TargetScore = score
	}

	var avatar *services.AvatarUpload
	file, header, err := r.FormFile("avatar")
	if err == nil {
		defer file.Close()
		content, err := io.ReadAll(file)
		if err != nil {
			respondDetail(w, http.StatusBadRequest, "读取头像失败")
			return
		}
		avatar = &services.AvatarUpload{FileName: header.Filename, Content: content}
	}

	profile, err := h.users.UpdateProfile(r.Context(), userID, update, avatar)
	if err != nil {
		respondError(w, err)
		return
	}

	h.logger.Info(r.Context(), "profile updated", "user_id", userID)
	respondJSON(w, http.StatusOK, toProfileDTO(profile))
}

func (h *Handler) ListPointsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	points, err := h.points.List(r.Context(), userID, r.URL.Query().Get("subject"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toPointDTOs(points))
}

type pointRequest struct {
	OwnerID    int64  `json:"id"`
	Subject    string `json:"subject"`
	PointName  string `json:"point_name"`
	Category   string `json:"category"`
	Importance string `json:"importance"`
	Difficulty string `json:"difficulty"`
	ExamPoints string `json:"exam_points"`
	Content    string `json:"content"`
}

func (req *pointRequest) input() services.PointInput {
	return services.PointInput{
		Subject:    req.Subject,
		PointName:  req.PointName,
		Category:   req.Category,
		Importance: req.Importance,
		Difficulty: req.Difficulty,
		ExamPoints: req.ExamPoints,
		Content:    req.Content,
	}
}

func (h *Handler) CreatePointHandler(w http.ResponseWriter, r *http.Request) {
	authID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, common.ErrorUnauthorized)
		return
	}

	var req pointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	// the owner field of the body must not let a caller write into another
	// account
	if req.OwnerID != 0 && req.OwnerID != authID {
		respondError(w, common.ErrorForbidden)
		return
	}

	kp, err := h.points.Create(r.Context(), authID, req.input())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toPointDTO(kp))
}

func pathPointID(r *http.Request) (int64, error) {
	kpID, err := strconv.ParseInt(mux.Vars(r)["kpId"], 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return kpID, nil
}

func (h *Handler) UpdatePointHandler(w http.ResponseWriter, r *http.Request) {
	authID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, common.ErrorUnauthorized)
		return
	}

	kpID, err := pathPointID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req pointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	kp, err := h.points.Update(r.Context(), kpID, authID, req.input())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toPointDTO(kp))
}

func (h *Handler) DeletePointHandler(w http.ResponseWriter, r *http.Request) {
	authID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, common.ErrorUnauthorized)
		return
	}

	kpID, err := pathPointID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.points.Delete(r.Context(), kpID, authID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "删除成功"})
}

func (h *Handler) PointDetailHandler(w http.ResponseWriter, r *http.Request) {
	authID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, common.ErrorUnauthorized)
		return
	}

	kpID, err := strconv.ParseInt(mux.Vars(r)["kpId"], 10, 64)
	if err != nil {
		respondError(w, common.ErrorNotFound)
		return
	}

	kp, err := h.points.Detail(r.Context(), kpID, authID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toPointDTO(kp))
}

// AvatarHandler streams a stored avatar object. Assets are public: the
// avatar URL ends up in rendered pages, not behind the API token.
func (h *Handler) AvatarHandler(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	body, contentType, err := h.store.Open(r.Context(), key)
	if err != nil {
		respondError(w, common.ErrorNotFound)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn(r.Context(), "avatar stream aborted", "key", key, "error", err)
	}
}
