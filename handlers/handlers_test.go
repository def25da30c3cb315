package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"lexassist-backend/auth"
	"lexassist-backend/models"
	"lexassist-backend/repository"
	"lexassist-backend/service"
	"lexassist-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return newTestRouterWithStorage(t, store)
}

func newTestRouterWithStorage(t *testing.T, store storage.Storage) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := repository.NewMemoryUserRepository()
	caseRepo := repository.NewMemoryCaseRepository()
	docRepo := repository.NewMemoryDocumentRepository()

	jwtService := auth.NewJWTService("test-secret")

	authService := service.NewAuthService(
		service.AuthWithUserRepository(userRepo),
		service.AuthWithJWTService(jwtService),
	)
	caseService := service.NewCaseService(
		service.CaseWithCaseRepository(caseRepo),
		service.CaseWithUserRepository(userRepo),
	)
	analysisService := service.NewAnalysisService()
	searchService := service.NewSearchService()

	authHandler := NewAuthHandler(authService)
	caseHandler := NewCaseHandler(caseService, analysisService, docRepo, userRepo, store)
	searchHandler := NewSearchHandler(searchService)

	mw := auth.NewMiddleware(jwtService)

	r := gin.New()
	r.POST("/api/register", authHandler.Register)
	r.POST("/api/login", authHandler.Login)

	api := r.Group("/api", mw.RequireUser())
	{
		api.GET("/profile", authHandler.GetProfile)
		api.POST("/update-profile", authHandler.UpdateProfile)
		api.POST("/search", searchHandler.Search)
		api.POST("/upload", caseHandler.Upload)
		api.POST("/save-case", caseHandler.SaveCase)
		api.GET("/cases", caseHandler.ListCases)
		api.POST("/cases/add-note", caseHandler.AddNote)
	}
	r.GET("/api/all-cases", mw.RequireRole(models.RoleLawyer, models.RoleAdmin), caseHandler.ListAllCases)
	lawyer := r.Group("/api/cases", mw.RequireRole(models.RoleLawyer))
	{
		lawyer.POST("/update-status", caseHandler.UpdateStatus)
		lawyer.POST("/update-hearing", caseHandler.UpdateHearing)
	}

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine, email, role string) string {
	t.Helper()

	w := doJSON(t, r, "POST", "/api/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, "POST", "/api/login", "", gin.H{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "asha@example.com", "litigant")

	w := doJSON(t, r, "GET", "/api/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "asha@example.com")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLoginWrongPassword(t *testing.T) {
	r := newTestRouter(t)
	registerAndLogin(t, r, "asha@example.com", "litigant")

	w := doJSON(t, r, "POST", "/api/login", "", gin.H{
		"email":    "asha@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	r := newTestRouter(t)
	registerAndLogin(t, r, "asha@example.com", "litigant")

	w := doJSON(t, r, "POST", "/api/register", "", gin.H{
		"name":     "Other",
		"email":    "asha@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "EMAIL_IN_USE")
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, "GET", "/api/cases", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSaveCaseAndList(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "asha@example.com", "litigant")

	w := doJSON(t, r, "POST", "/api/save-case", token, gin.H{
		"data": gin.H{
			"summary":    "Deposit dispute",
			"facts":      "Landlord kept the deposit",
			"next_steps": []string{"Send notice"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, "GET", "/api/cases", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Deposit dispute")
	assert.Contains(t, w.Body.String(), models.StatusSubmitted)
}

func TestStatusUpdateRequiresLawyerRole(t *testing.T) {
	r := newTestRouter(t)
	litigant := registerAndLogin(t, r, "litigant@example.com", "litigant")
	lawyer := registerAndLogin(t, r, "lawyer@example.com", "lawyer")

	w := doJSON(t, r, "POST", "/api/save-case", litigant, gin.H{
		"data": gin.H{"summary": "Deposit dispute"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			CaseID string `json:"case_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Litigants cannot change status, even on their own case.
	w = doJSON(t, r, "POST", "/api/cases/update-status", litigant, gin.H{
		"caseId": created.Data.CaseID,
		"status": models.StatusFiled,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, "POST", "/api/cases/update-status", lawyer, gin.H{
		"caseId": created.Data.CaseID,
		"status": models.StatusFiled,
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAllCasesRequiresLawyerOrAdmin(t *testing.T) {
	r := newTestRouter(t)
	litigant := registerAndLogin(t, r, "litigant@example.com", "litigant")
	admin := registerAndLogin(t, r, "admin@example.com", "admin")

	w := doJSON(t, r, "GET", "/api/all-cases", litigant, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, "GET", "/api/all-cases", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchReturnsFallbackJudgments(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "asha@example.com", "litigant")

	w := doJSON(t, r, "POST", "/api/search", token, gin.H{"query": "property dispute"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kesavananda Bharati")
}

// failingStorage simulates an unavailable blob backend.
type failingStorage struct{}

func (failingStorage) Upload(ctx context.Context, docID uuid.UUID, filename string, data io.Reader) (string, error) {
	return "", errors.New("storage unavailable")
}

func (failingStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	return nil, errors.New("storage unavailable")
}

func (failingStorage) Delete(ctx context.Context, storagePath string) error {
	return errors.New("storage unavailable")
}

func doUpload(t *testing.T, r *gin.Engine, token, filename, contentType string, content []byte, save bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	if save {
		require.NoError(t, writer.WriteField("save", "true"))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadAnalyzesAndRecordsDocument(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "asha@example.com", "litigant")

	w := doUpload(t, r, token, "petition.txt", "text/plain", []byte("The landlord kept the deposit."), false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			DocumentID string                 `json:"document_id"`
			Analysis   *models.AnalysisResult `json:"analysis"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.DocumentID)
	require.NotNil(t, resp.Data.Analysis)
	assert.NotEmpty(t, resp.Data.Analysis.Summary)
}

func TestUploadWithSaveCreatesCase(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "asha@example.com", "litigant")

	w := doUpload(t, r, token, "petition.pdf", "application/pdf", []byte("%PDF-1.4 dummy"), true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			CaseID string `json:"case_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.CaseID)

	w = doJSON(t, r, "GET", "/api/cases", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), resp.Data.CaseID)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "asha@example.com", "litigant")

	w := doUpload(t, r, token, "malware.exe", "application/octet-stream", []byte{0x4d, 0x5a}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_TYPE")
}

func TestUploadRejectsOversizeFile(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "asha@example.com", "litigant")

	oversize := bytes.Repeat([]byte("a"), 10*1024*1024+1)
	w := doUpload(t, r, token, "huge.txt", "text/plain", oversize, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_TOO_LARGE")
}

func TestUploadRequiresFile(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "asha@example.com", "litigant")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FILE")
}

func TestUploadDegradedStorageStillAnalyzes(t *testing.T) {
	r := newTestRouterWithStorage(t, failingStorage{})
	token := registerAndLogin(t, r, "asha@example.com", "litigant")

	w := doUpload(t, r, token, "petition.txt", "text/plain", []byte("The landlord kept the deposit."), false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The analysis comes back, but no document id is reported for a
	// record that was never persisted.
	assert.Contains(t, w.Body.String(), "analysis")
	assert.NotContains(t, w.Body.String(), "document_id")
}

func TestUpdateHearingRejectsBadDate(t *testing.T) {
	r := newTestRouter(t)
	lawyer := registerAndLogin(t, r, "lawyer@example.com", "lawyer")

	w := doJSON(t, r, "POST", "/api/cases/update-hearing", lawyer, gin.H{
		"caseId":      "00000000-0000-0000-0000-000000000001",
		"hearingDate": "14-09-2026",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_DATE")
}
