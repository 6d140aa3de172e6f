package analyses

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-insight/internal/analysis"
	"resume-insight/internal/shared/server/middleware"
	"resume-insight/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.POST("/documents/:id/analyze", h.analyzeDocument)
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/:id", h.get)
}

func (h *Handler) analyze(c *gin.Context) {
	var in analysis.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}

	ctx := withRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	report, err := h.Svc.AnalyzeText(ctx, in)
	if err != nil {
		if errors.Is(err, analysis.ErrCollaborator) {
			respond.Error(c, http.StatusBadGateway, ErrorCodeCollaborator, "analysis backend unavailable", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "analysis failed", nil)
		return
	}

	respond.JSON(c, http.StatusOK, report)
}

type analyzeDocumentRequest struct {
	JobDescription string `json:"jobDescription"`
	JobRole        string `json:"jobRole"`
	Retry          bool   `json:"retry"`
}

func (h *Handler) analyzeDocument(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	var req analyzeDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}

	ctx := withRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	a, created, err := h.Svc.StartForDocument(ctx, userID, documentID, req.JobDescription, req.JobRole, req.Retry)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrRetryRequired):
			respond.Error(c, http.StatusConflict, "retry_required", "previous analysis failed; pass retry=true to run again", gin.H{
				"analysisId": a.ID,
			})
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to start analysis", nil)
		}
		return
	}

	c.Set("analysisId", a.ID)
	c.Set("documentId", documentID)

	status := http.StatusOK
	if created {
		status = http.StatusAccepted
	}
	respond.JSON(c, status, toResponse(a))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")

	a, err := h.Svc.Get(c.Request.Context(), userID, analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to fetch analysis", nil)
		}
		return
	}

	c.Set("analysisId", a.ID)
	respond.JSON(c, http.StatusOK, toResponse(a))
}

func (h *Handler) list(c *gin.Context) {
	if isGuest, ok := c.Get("isGuest"); ok {
		if guest, ok2 := isGuest.(bool); ok2 && guest {
			respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
			return
		}
	}

	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to list analyses", nil)
		return
	}

	resp := make([]AnalysisResponse, 0, len(items))
	for _, a := range items {
		resp = append(resp, toResponse(a))
	}
	respond.JSON(c, http.StatusOK, resp)
}
