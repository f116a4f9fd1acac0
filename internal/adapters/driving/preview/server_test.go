package preview

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/export"
	"github.com/custodia-labs/resumechat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/services"
)

func newTestResume(t *testing.T) *services.ResumeService {
	t.Helper()
	ctx := context.Background()
	store := services.NewSessionStore(memory.NewKVStore())

	_, err := services.NewSessionService(store).Login(ctx, domain.Credentials{UserID: "ada", APIKey: "sk-1"})
	require.NoError(t, err)

	resume := services.NewResumeService(store, export.All()...)
	_, err = resume.Apply(ctx, domain.SkillGroup{Category: "Languages", Items: []string{"Go", "<script>"}})
	require.NoError(t, err)
	return resume
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewServer_RequiresResume(t *testing.T) {
	s, err := NewServer(nil)
	assert.ErrorIs(t, err, ErrMissingResumeService)
	assert.Nil(t, s)
}

func TestServer_Health(t *testing.T) {
	s, err := NewServer(newTestResume(t))
	require.NoError(t, err)

	rec := get(t, s.Handler(), "/api/v1/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestServer_Page(t *testing.T) {
	s, err := NewServer(newTestResume(t))
	require.NoError(t, err)

	rec := get(t, s.Handler(), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>ada</h1>")
	assert.Contains(t, body, "<strong>Languages</strong>: Go, &lt;script&gt;")
	assert.Contains(t, body, "No experience added yet")
	assert.NotContains(t, body, "<script>")
}

func TestServer_ResumeJSON(t *testing.T) {
	s, err := NewServer(newTestResume(t))
	require.NoError(t, err)

	rec := get(t, s.Handler(), "/api/v1/resume")

	require.Equal(t, http.StatusOK, rec.Code)
	var doc domain.ResumeDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Skills, 1)
	assert.Equal(t, "Languages", doc.Skills[0].Category)
}

func TestServer_Export(t *testing.T) {
	s, err := NewServer(newTestResume(t))
	require.NoError(t, err)

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"/api/v1/resume/export/markdown", http.StatusOK, "text/markdown", "# ada"},
		{"/api/v1/resume/export/md", http.StatusOK, "text/markdown", "## Skills"},
		{"/api/v1/resume/export/json", http.StatusOK, "application/json", `"category": "Languages"`},
		{"/api/v1/resume/export/yaml", http.StatusOK, "application/yaml", "category: Languages"},
		{"/api/v1/resume/export/pdf", http.StatusBadRequest, "application/json", "unsupported_format"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, s.Handler(), tt.path)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), tt.contentType)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

// brokenResume fails every call.
type brokenResume struct{}

func (brokenResume) Get(context.Context) (*domain.ResumeDocument, error) {
	return nil, errors.New("store down")
}

func (brokenResume) Apply(context.Context, domain.SectionEntry) (*domain.ResumeDocument, error) {
	return nil, errors.New("store down")
}

func (brokenResume) SetPersonalInfo(context.Context, domain.PersonalInfo) error {
	return errors.New("store down")
}

func (brokenResume) Export(context.Context, io.Writer, domain.ExportFormat) error {
	return errors.New("store down")
}

func (brokenResume) DisplayName(context.Context) string { return "" }

func TestServer_StoreFailure(t *testing.T) {
	s, err := NewServer(brokenResume{})
	require.NoError(t, err)

	for _, path := range []string{"/", "/api/v1/resume", "/api/v1/resume/export/json"} {
		rec := get(t, s.Handler(), path)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), path)
		assert.Equal(t, "store down", body.Error.Message)
	}
}

func TestRecovery(t *testing.T) {
	s, err := NewServer(brokenResume{})
	require.NoError(t, err)
	s.engine.GET("/panic", func(*gin.Context) { panic("boom") })

	rec := get(t, s.Handler(), "/panic")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal")
}
