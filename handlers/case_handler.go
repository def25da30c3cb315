package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"lexassist-backend/auth"
	"lexassist-backend/models"
	"lexassist-backend/repository"
	"lexassist-backend/service"
	"lexassist-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CaseHandler handles document upload, AI analysis and the case
// lifecycle routes.
type CaseHandler struct {
	caseService      *service.CaseService
	analysisService  *service.AnalysisService
	docRepo          repository.DocumentRepository
	userRepo         repository.UserRepository
	storage          storage.Storage
	maxFileSize      int64
	allowedMimeTypes map[string]bool
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(
	caseService *service.CaseService,
	analysisService *service.AnalysisService,
	docRepo repository.DocumentRepository,
	userRepo repository.UserRepository,
	store storage.Storage,
) *CaseHandler {
	return &CaseHandler{
		caseService:     caseService,
		analysisService: analysisService,
		docRepo:         docRepo,
		userRepo:        userRepo,
		storage:         store,
		maxFileSize:     10 * 1024 * 1024, // 10MB
		allowedMimeTypes: map[string]bool{
			"application/pdf":    true,
			"text/plain":         true,
			"image/png":          true,
			"image/jpeg":         true,
			"application/msword": true,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		},
	}
}

// Upload handles POST /api/upload: stores the document, runs AI
// analysis over its bytes and, when save=true, creates a case from the
// result.
func (h *CaseHandler) Upload(c *gin.Context) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "File is required")
		return
	}
	if fileHeader.Size > h.maxFileSize {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File exceeds the 10MB limit")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mimeFromFilename(fileHeader.Filename)
	}
	if !h.allowedMimeTypes[mimeType] {
		respondError(c, http.StatusBadRequest, "UNSUPPORTED_TYPE", "Unsupported document type: "+mimeType)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_OPEN_ERROR", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_READ_ERROR", err.Error())
		return
	}

	ctx := c.Request.Context()

	// Persist the blob and its record. Storage failure does not block
	// the analysis: the user still gets a result.
	doc := &models.Document{
		ID:       uuid.New(),
		UserID:   userID,
		Filename: fileHeader.Filename,
		MimeType: mimeType,
		Size:     int64(len(data)),
	}
	persisted := false
	storagePath, err := h.storage.Upload(ctx, doc.ID, doc.Filename, bytes.NewReader(data))
	if err != nil {
		log.Printf("Warning: failed to store uploaded document %s: %v", doc.Filename, err)
	} else {
		doc.StoragePath = storagePath
		if err := h.docRepo.Create(ctx, doc); err != nil {
			log.Printf("Warning: failed to record uploaded document %s: %v", doc.Filename, err)
		} else {
			persisted = true
			if err := h.userRepo.AdjustStats(ctx, userID, 0, 1); err != nil {
				log.Printf("Warning: failed to update document counter for user %s: %v", userID, err)
			}
		}
	}

	analysis := h.analysisService.AnalyzeDocument(ctx, data, mimeType)

	response := gin.H{"analysis": analysis}
	if persisted {
		response["document_id"] = doc.ID
	}

	if c.PostForm("save") == "true" {
		created, err := h.caseService.CreateCase(ctx, userID, analysis)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "CASE_CREATE_FAILED", "Analysis succeeded but the case could not be saved")
			return
		}
		response["case_id"] = created.ID
	}

	respondOK(c, http.StatusOK, response)
}

// AnalyzeRequest represents the request body for a SWOT analysis
type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// Analyze handles POST /api/analyze
func (h *CaseHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result := h.analysisService.AnalyzeSWOT(c.Request.Context(), req.Text)
	respondOK(c, http.StatusOK, result)
}

// ChatRequest represents the request body for the assistant chat
type ChatRequest struct {
	Msg string `json:"msg" binding:"required"`
}

// Chat handles POST /api/chat
func (h *CaseHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	reply := h.analysisService.Chat(c.Request.Context(), req.Msg)
	respondOK(c, http.StatusOK, gin.H{"reply": reply})
}

// SaveCaseRequest represents the request body for saving a case from a
// previously returned analysis. The owner comes from the token.
type SaveCaseRequest struct {
	Data models.AnalysisResult `json:"data" binding:"required"`
}

// SaveCase handles POST /api/save-case
func (h *CaseHandler) SaveCase(c *gin.Context) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
		return
	}

	var req SaveCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	created, err := h.caseService.CreateCase(c.Request.Context(), userID, &req.Data)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "CASE_CREATE_FAILED", "The case could not be saved")
		return
	}

	respondOK(c, http.StatusCreated, gin.H{
		"case_id": created.ID,
		"case":    created,
	})
}

// ListCases handles GET /api/cases (the caller's own cases).
func (h *CaseHandler) ListCases(c *gin.Context) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
		return
	}

	cases, err := h.caseService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", "Could not load cases")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"cases": cases})
}

// ListAllCases handles GET /api/all-cases. The route is gated by the
// lawyer/admin role check in the router.
func (h *CaseHandler) ListAllCases(c *gin.Context) {
	cases, err := h.caseService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", "Could not load cases")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"cases": cases})
}

// UpdateStatusRequest represents the request body for a status update
type UpdateStatusRequest struct {
	CaseID string `json:"caseId" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles POST /api/cases/update-status
func (h *CaseHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	caseID, err := uuid.Parse(req.CaseID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CASE_ID", "Invalid case id format")
		return
	}

	if err := h.caseService.UpdateStatus(c.Request.Context(), caseID, req.Status); err != nil {
		if errors.Is(err, service.ErrCaseNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Case not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Status update failed")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"case_id": caseID, "status": req.Status})
}

// UpdateHearingRequest represents the request body for a hearing update
type UpdateHearingRequest struct {
	CaseID      string `json:"caseId" binding:"required"`
	HearingDate string `json:"hearingDate" binding:"required"` // YYYY-MM-DD
}

// UpdateHearing handles POST /api/cases/update-hearing
func (h *CaseHandler) UpdateHearing(c *gin.Context) {
	var req UpdateHearingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	caseID, err := uuid.Parse(req.CaseID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CASE_ID", "Invalid case id format")
		return
	}

	hearingDate, err := time.Parse("2006-01-02", req.HearingDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_DATE", "Hearing date must be YYYY-MM-DD")
		return
	}

	if err := h.caseService.UpdateHearing(c.Request.Context(), caseID, hearingDate); err != nil {
		if errors.Is(err, service.ErrCaseNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Case not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", "Hearing update failed")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"case_id": caseID, "hearing_date": req.HearingDate})
}

// AddNoteRequest represents the request body for appending a note
type AddNoteRequest struct {
	CaseID string `json:"caseId" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// AddNote handles POST /api/cases/add-note
func (h *CaseHandler) AddNote(c *gin.Context) {
	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	caseID, err := uuid.Parse(req.CaseID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CASE_ID", "Invalid case id format")
		return
	}

	if err := h.caseService.AddNote(c.Request.Context(), caseID, req.Text); err != nil {
		if errors.Is(err, service.ErrCaseNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Case not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "NOTE_FAILED", "Could not add note")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"case_id": caseID})
}

func mimeFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return ""
	}
}
