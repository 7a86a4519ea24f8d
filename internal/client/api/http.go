package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"studymate/internal/client/models"
	"studymate/internal/common"
)

// HTTPClient is the concrete Client over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// AvatarURL prefixes a server-side avatar path with the base URL.
// An empty path means the caller should fall back to the default asset.
func (c *HTTPClient) AvatarURL(path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// detailPayload is the error body shape used by the server on non-2xx.
type detailPayload struct {
	Detail string `json:"detail"`
}

// do sends one request and decodes a 2xx JSON body into out (when non-nil).
// Non-2xx responses become *APIError; transport failures wrap ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set(common.AuthHeaderName, common.AuthSchemePrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload detailPayload
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{StatusCode: resp.StatusCode, Detail: payload.Detail}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, "", nil)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	in := map[string]string{"username": username, "password": password}
	var out LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) (*RegisterResult, error) {
	in := map[string]string{"username": username, "password": password}
	var out RegisterResult
	if err := c.doJSON(ctx, http.MethodPost, "/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/profile/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile sends the whole profile form, plus the new avatar when one
// was selected, as a single multipart request. There is no partial update.
func (c *HTTPClient) UpdateProfile(ctx context.Context, userID int64, form ProfileForm, avatar *AvatarFile) (*models.UserProfile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"username":             form.Username,
		"grade":                form.Grade,
		"postgraduate_session": form.PostgraduateSession,
		"school":               form.School,
		"major":                form.Major,
		"target_school":        form.TargetSchool,
		"target_major":         form.TargetMajor,
		"target_score":         form.TargetScore,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	if avatar != nil {
		fw, err := mw.CreateFormFile("avatar", avatar.Name)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(avatar.Content); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out models.UserProfile
	path := fmt.Sprintf("/profile/%d", userID)
	if err := c.do(ctx, http.MethodPut, path, &buf, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListPoints(ctx context.Context, userID int64, subject string) ([]models.KnowledgePoint, error) {
	path := fmt.Sprintf("/knowledge-points/%d", userID)
	if subject != "" {
		path += "?subject=" + url.QueryEscape(subject)
	}
	var out []models.KnowledgePoint
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreatePoint(ctx context.Context, ownerID int64, form PointForm) (*models.KnowledgePoint, error) {
	in := struct {
		PointForm
		OwnerID int64 `json:"id"`
	}{PointForm: form, OwnerID: ownerID}

	var out models.KnowledgePoint
	if err := c.doJSON(ctx, http.MethodPost, "/knowledge-points", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdatePoint(ctx context.Context, kpID int64, form PointForm) (*models.KnowledgePoint, error) {
	var out models.KnowledgePoint
	path := fmt.Sprintf("/knowledge-points/%d", kpID)
	if err := c.doJSON(ctx, http.MethodPut, path, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeletePoint(ctx context.Context, kpID int64) error {
	path := fmt.Sprintf("/knowledge-points/%d", kpID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *HTTPClient) GetPointDetail(ctx context.Context, kpID int64) (*models.KnowledgePoint, error) {
	var out models.KnowledgePoint
	path := fmt.Sprintf("/knowledge-points/detail/%d", kpID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
