package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yanqian/part-describer/internal/domain/description"
)

// Handler wires the HTTP transport to the description service.
type Handler struct {
	descriptionSvc description.Service
	logger         *slog.Logger
	newSessionID   func() string
}

// NewHandler constructs the root HTTP handler.
func NewHandler(descriptionSvc description.Service, logger *slog.Logger) *Handler {
	return &Handler{
		descriptionSvc: descriptionSvc,
		logger:         logger.With("component", "http.handler"),
		newSessionID:   uuid.NewString,
	}
}

type textRequest struct {
	Text string `json:"text"`
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Normalize returns the canonical description for free text.
func (h *Handler) Normalize(c *gin.Context) {
	var req description.NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.descriptionSvc.Normalize(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err, "normalize_failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// EditAttributes moves, edits or deletes one attribute of a description.
func (h *Handler) EditAttributes(c *gin.Context) {
	var req description.AttributeEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.descriptionSvc.EditAttributes(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err, "edit_failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateSession issues a new session identifier.
func (h *Handler) CreateSession(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"sessionId": h.newSessionID()})
}

// Generate normalizes text and records it in the session history.
func (h *Handler) Generate(c *gin.Context) {
	var body textRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.descriptionSvc.Generate(c.Request.Context(), description.GenerateRequest{
		SessionID: c.Param("session"),
		Text:      body.Text,
	})
	if err != nil {
		abortWithError(c, domainError(err, "generate_failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History lists the session's recent inputs.
func (h *Handler) History(c *gin.Context) {
	h.list(c, description.ListHistory)
}

// Saved lists the session's saved descriptions.
func (h *Handler) Saved(c *gin.Context) {
	h.list(c, description.ListSaved)
}

// Save adds text to the session's saved list.
func (h *Handler) Save(c *gin.Context) {
	var body textRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	entries, err := h.descriptionSvc.Save(c.Request.Context(), description.SaveRequest{
		SessionID: c.Param("session"),
		Text:      body.Text,
	})
	if err != nil {
		abortWithError(c, domainError(err, "save_failed"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entries": entries})
}

// DeleteHistory removes one history entry.
func (h *Handler) DeleteHistory(c *gin.Context) {
	h.delete(c, description.ListHistory)
}

// DeleteSaved removes one saved entry.
func (h *Handler) DeleteSaved(c *gin.Context) {
	h.delete(c, description.ListSaved)
}

func (h *Handler) list(c *gin.Context, kind description.ListKind) {
	entries, err := h.descriptionSvc.List(c.Request.Context(), c.Param("session"), kind)
	if err != nil {
		abortWithError(c, domainError(err, "list_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *Handler) delete(c *gin.Context, kind description.ListKind) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "index must be an integer", err))
		return
	}

	if err := h.descriptionSvc.Delete(c.Request.Context(), c.Param("session"), kind, index); err != nil {
		abortWithError(c, domainError(err, "delete_failed"))
		return
	}

	c.Status(http.StatusNoContent)
}
