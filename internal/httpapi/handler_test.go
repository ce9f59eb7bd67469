package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/auth"
	"github.com/aajetechnology/StudyBot/internal/config"
	"github.com/aajetechnology/StudyBot/internal/export"
	"github.com/aajetechnology/StudyBot/internal/logger"
	"github.com/aajetechnology/StudyBot/internal/models"
	"github.com/aajetechnology/StudyBot/internal/pipeline"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth struct{}

func (fakeAuth) Register(_ context.Context, in auth.RegisterInput) (*models.User, error) {
	return &models.User{ID: 1, Username: in.Username, Email: in.Email, IsAdmin: true}, nil
}

func (fakeAuth) Login(_ context.Context, in auth.LoginInput) (string, *models.User, error) {
	if in.Password != "secret1" {
		return "", nil, apperror.Unauthorized("invalid email or password")
	}
	return "user-token", &models.User{ID: 1, Email: in.Email}, nil
}

func (fakeAuth) ParseToken(token string) (*auth.Claims, error) {
	switch token {
	case "user-token":
		return &auth.Claims{UserID: 1}, nil
	case "admin-token":
		return &auth.Claims{UserID: 2, Admin: true}, nil
	default:
		return nil, apperror.Unauthorized("invalid session token")
	}
}

type fakeStore struct {
	lectures map[uint]*models.Lecture
}

func (f *fakeStore) GetLecture(_ context.Context, userID, id uint) (*models.Lecture, error) {
	l, ok := f.lectures[id]
	if !ok || l.UserID != userID {
		return nil, apperror.NotFound("lecture")
	}
	return l, nil
}

func (f *fakeStore) ListLectures(_ context.Context, userID uint) ([]models.Lecture, error) {
	var out []models.Lecture
	for _, l := range f.lectures {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeStore) ListUsers(context.Context) ([]models.User, error) {
	return []models.User{{ID: 1, Username: "ada"}, {ID: 2, Username: "root", IsAdmin: true}}, nil
}

type fakePipeline struct {
	got *pipeline.Job
}

func (f *fakePipeline) Run(_ context.Context, job *pipeline.Job) <-chan pipeline.Event {
	f.got = job
	out := make(chan pipeline.Event, 3)
	out <- pipeline.Event{Msg: ">>> STARTING TRANSCRIPTION...", Class: pipeline.ClassInfo}
	out <- pipeline.Event{Msg: "--- PROCESS COMPLETE ---", Class: pipeline.ClassComplete}
	out <- pipeline.Event{Msg: pipeline.Sentinel}
	close(out)
	return out
}

type testServer struct {
	router   *gin.Engine
	cfg      *config.Config
	pipeline *fakePipeline
	store    *fakeStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Server.MaxUploadMB = 1
	cfg.Paths.Uploads = filepath.Join(dir, "uploads")
	cfg.Paths.Output = filepath.Join(dir, "output")
	cfg.Auth.CookieName = "studybot_token"

	log := logger.NewNop()
	ts := &testServer{
		cfg:      cfg,
		pipeline: &fakePipeline{},
		store: &fakeStore{lectures: map[uint]*models.Lecture{
			3: {ID: 3, UserID: 1, Title: "Cells", OutputFormat: "docx"},
		}},
	}
	h := New(cfg, Deps{
		Auth:     fakeAuth{},
		Store:    ts.store,
		Pipeline: ts.pipeline,
		Exporter: export.New(cfg.Paths.Output, log),
	}, log)
	ts.router = h.Router()
	return ts
}

func (ts *testServer) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(httptest.NewRequest(http.MethodGet, "/health", nil), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get(headerRequestID) == "" {
		t.Error("missing request id header")
	}
}

func TestAuthentication(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"no credentials", func(*http.Request) {}, http.StatusUnauthorized},
		{"bad scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }, http.StatusUnauthorized},
		{"bad token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer user-token") }, http.StatusOK},
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "studybot_token", Value: "user-token"})
		}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/lectures", nil)
			tt.setup(req)
			w := ts.do(req, "")
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}
			if tt.status == http.StatusUnauthorized {
				if resp := decodeError(t, w); resp.Status != "error" || resp.Error.Code != apperror.CodeUnauthorized {
					t.Errorf("error body = %+v", resp)
				}
			}
		})
	}
}

func TestAdminUsers(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil), "user-token")
	if w.Code != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", w.Code)
	}

	w = ts.do(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil), "admin-token")
	if w.Code != http.StatusOK {
		t.Fatalf("admin status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"username":"root"`) {
		t.Errorf("body = %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("password hash leaked: %s", w.Body.String())
	}
}

func TestLoginSetsCookie(t *testing.T) {
	ts := newTestServer(t)

	body := strings.NewReader(`{"email":"ada@example.com","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	w := ts.do(req, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "studybot_token=user-token") || !strings.Contains(cookie, "HttpOnly") {
		t.Errorf("Set-Cookie = %q", cookie)
	}

	body = strings.NewReader(`{"email":"ada@example.com","password":"wrong"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	if w := ts.do(req, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", w.Code)
	}
}

func TestProcessLectureStream(t *testing.T) {
	ts := newTestServer(t)
	if err := os.MkdirAll(ts.cfg.Paths.Uploads, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(ts.cfg.Paths.Uploads, "abc.mp3"), []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/lectures/process/abc.mp3?title=Cells&format=docx&original=Week%202.mp3", nil)
	req.AddCookie(&http.Cookie{Name: "studybot_token", Value: "user-token"})
	w := ts.do(req, "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	for header, want := range map[string]string{
		"Content-Type":      "text/event-stream",
		"Cache-Control":     "no-cache, no-transform",
		"X-Accel-Buffering": "no",
	} {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}

	want := "data: {\"msg\":\">>> STARTING TRANSCRIPTION...\",\"class\":\"text-info\"}\n\n" +
		"data: {\"msg\":\"--- PROCESS COMPLETE ---\",\"class\":\"text-primary fw-bold\"}\n\n" +
		"data: {\"msg\":\"____FINISHED____\"}\n\n"
	if w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}

	job := ts.pipeline.got
	if job == nil {
		t.Fatal("pipeline not started")
	}
	if job.UserID != 1 || job.Title != "Cells" || job.Format != "docx" || job.OriginalFilename != "Week 2.mp3" {
		t.Errorf("job = %+v", job)
	}
}

func TestProcessLectureMissingUpload(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/lectures/process/missing.mp3", nil), "user-token")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if ts.pipeline.got != nil {
		t.Error("pipeline started for a missing upload")
	}
}

func multipartBody(t *testing.T, field, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadLecture(t *testing.T) {
	ts := newTestServer(t)

	body, ctype := multipartBody(t, "lecture_file", "Week 1.MP3", []byte("fake audio"))
	req := httptest.NewRequest(http.MethodPost, "/api/lectures/upload", body)
	req.Header.Set("Content-Type", ctype)
	w := ts.do(req, "user-token")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Filename string `json:"filename"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(resp.Data.Filename, ".mp3") {
		t.Errorf("stored name = %q", resp.Data.Filename)
	}
	data, err := os.ReadFile(filepath.Join(ts.cfg.Paths.Uploads, resp.Data.Filename))
	if err != nil || string(data) != "fake audio" {
		t.Errorf("stored file = %q, %v", data, err)
	}

	body, ctype = multipartBody(t, "lecture_file", "notes.exe", []byte("x"))
	req = httptest.NewRequest(http.MethodPost, "/api/lectures/upload", body)
	req.Header.Set("Content-Type", ctype)
	if w := ts.do(req, "user-token"); w.Code != http.StatusBadRequest {
		t.Errorf("unsupported type status = %d, want 400", w.Code)
	}
}

func TestDownloadLecture(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/lectures/3/download", nil), "user-token")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing export status = %d, want 404", w.Code)
	}

	if err := os.MkdirAll(ts.cfg.Paths.Output, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(ts.cfg.Paths.Output, "output_3.docx"), []byte("docx"), 0644); err != nil {
		t.Fatal(err)
	}
	w = ts.do(httptest.NewRequest(http.MethodGet, "/api/lectures/3/download", nil), "user-token")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, `Cells.docx`) {
		t.Errorf("Content-Disposition = %q", cd)
	}

	w = ts.do(httptest.NewRequest(http.MethodGet, "/api/lectures/3/download", nil), "admin-token")
	if w.Code != http.StatusNotFound {
		t.Errorf("other user's download status = %d, want 404", w.Code)
	}

	w = ts.do(httptest.NewRequest(http.MethodGet, "/api/lectures/abc/download", nil), "user-token")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", w.Code)
	}
}

func TestEncodeEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   pipeline.Event
		want string
	}{
		{
			name: "markup characters stay literal",
			ev:   pipeline.Event{Msg: ">>> STARTING TRANSCRIPTION...", Class: pipeline.ClassInfo},
			want: `{"msg":">>> STARTING TRANSCRIPTION...","class":"text-info"}`,
		},
		{
			name: "ampersand and angle brackets",
			ev:   pipeline.Event{Msg: "Q&A <notes>"},
			want: `{"msg":"Q&A <notes>"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeEvent(tt.ev)
			if err != nil {
				t.Fatalf("encodeEvent() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("encodeEvent() = %s, want %s", got, tt.want)
			}
		})
	}
}
