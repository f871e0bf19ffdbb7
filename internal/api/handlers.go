package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/takara45/ai-seo-homepage/internal/ai"
	"github.com/takara45/ai-seo-homepage/internal/editor"
	"github.com/takara45/ai-seo-homepage/internal/hearing"
	"github.com/takara45/ai-seo-homepage/internal/publish"
	"github.com/takara45/ai-seo-homepage/internal/session"
	"github.com/takara45/ai-seo-homepage/internal/template"
)

// exportFilename is the fixed name of the downloaded document.
const exportFilename = "index.html"

// maxUploadBytes caps replacement image uploads.
const maxUploadBytes = 10 << 20

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	sessions *session.Store
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(sessions *session.Store) *APIHandler {
	return &APIHandler{sessions: sessions}
}

func (h *APIHandler) lookup(c *gin.Context) (*session.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return s, true
}

// --- Structs for API Requests/Responses ---

type AnswerRequest struct {
	Text string `json:"text" binding:"required"`
}

type AnswerResponse struct {
	Status  hearing.Status   `json:"status"`
	Session session.Snapshot `json:"session"`
}

type ChooseTemplateRequest struct {
	TemplateKey string `json:"templateKey" binding:"required"`
}

type TextEditRequest struct {
	RegionID string `json:"regionId" binding:"required"`
	Text     string `json:"text"`
}

type PublishRequest struct {
	SiteName string `json:"siteName" binding:"required"`
}

// --- API Handlers ---

// POST /sessions
func (h *APIHandler) CreateSession(c *gin.Context) {
	s := h.sessions.Create()
	log.Printf("Created wizard session %s", s.ID)
	c.JSON(http.StatusCreated, s.Snapshot())
}

// GET /sessions/:id
func (h *APIHandler) GetSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// GET /templates
func (h *APIHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, template.All())
}

// POST /sessions/:id/answers
func (h *APIHandler) SubmitAnswer(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	status, err := s.SubmitAnswer(c.Request.Context(), req.Text)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, AnswerResponse{Status: status, Session: s.Snapshot()})
	case errors.Is(err, hearing.ErrEmptyAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answer must not be empty"})
	case errors.Is(err, hearing.ErrComplete), errors.Is(err, session.ErrBusy), errors.Is(err, session.ErrWrongStep):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Session %s: answer failed: %v", s.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record answer"})
	}
}

// POST /sessions/:id/suggestion/retry
func (h *APIHandler) RetrySuggestion(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	err := s.RetrySuggestion(c.Request.Context())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, s.Snapshot())
	case errors.Is(err, session.ErrBusy), errors.Is(err, session.ErrWrongStep):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Template suggestion failed, please try again"})
	}
}

// POST /sessions/:id/template
func (h *APIHandler) ChooseTemplate(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	var req ChooseTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	err := s.ChooseTemplate(c.Request.Context(), req.TemplateKey)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, s.Snapshot())
	case errors.Is(err, session.ErrUnknownTemplate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrBusy), errors.Is(err, session.ErrWrongStep):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case ai.IsGenerationError(err):
		// The session stays on template selection; nothing is lost.
		c.JSON(http.StatusBadGateway, gin.H{"error": "Website generation failed, please try again"})
	default:
		log.Printf("Session %s: generation failed: %v", s.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Website generation failed, please try again"})
	}
}

// GET /sessions/:id/document
func (h *APIHandler) ExportDocument(c *gin.Context) {
	ed, ok := h.editorFor(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(ed.ExportHTML()))
}

// GET /sessions/:id/regions
func (h *APIHandler) ListRegions(c *gin.Context) {
	ed, ok := h.editorFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"regions": ed.Regions()})
}

// GET /sessions/:id/preview
func (h *APIHandler) PreviewMode(c *gin.Context) {
	if _, ok := h.lookup(c); !ok {
		return
	}
	mode, err := editor.ParsePreviewMode(c.DefaultQuery("mode", string(editor.PreviewDesktop)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": mode, "width": mode.Width()})
}

// POST /sessions/:id/edits/text
func (h *APIHandler) EditText(c *gin.Context) {
	ed, ok := h.editorFor(c)
	if !ok {
		return
	}
	var req TextEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := ed.CommitText(req.RegionID, req.Text); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /sessions/:id/edits/image
func (h *APIHandler) ReplaceImage(c *gin.Context) {
	ed, ok := h.editorFor(c)
	if !ok {
		return
	}
	regionID := c.PostForm("regionId")
	if regionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "regionId form field is required"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file form field is required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}

	if err := ed.SelectImage(regionID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Sniff the payload rather than trusting the client's declared type.
	if err := ed.ApplyImage(data, http.DetectContentType(data)); err != nil {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /sessions/:id/publish
func (h *APIHandler) Publish(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	state, err := s.Publish(c.Request.Context(), req.SiteName)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, state)
	case errors.Is(err, publish.ErrInvalidSiteName):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Site name must be 4-29 characters: lowercase letters, digits, and single hyphens (e.g. my-cool-site)"})
	case errors.Is(err, publish.ErrActionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "A publish action is already in progress"})
	case errors.Is(err, session.ErrNoDocument):
		c.JSON(http.StatusConflict, gin.H{"error": "No document to publish yet"})
	default:
		log.Printf("Session %s: publish failed: %v", s.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Publishing failed, please try again"})
	}
}

// POST /sessions/:id/unpublish
func (h *APIHandler) Unpublish(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	err := s.Unpublish(c.Request.Context())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, publish.ErrNotPublished), errors.Is(err, publish.ErrActionInFlight), errors.Is(err, session.ErrNoDocument):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Session %s: unpublish failed: %v", s.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unpublishing failed, please try again"})
	}
}

func (h *APIHandler) editorFor(c *gin.Context) (*editor.Editor, bool) {
	s, ok := h.lookup(c)
	if !ok {
		return nil, false
	}
	ed, err := s.Editor()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "No document assembled yet"})
		return nil, false
	}
	return ed, true
}
