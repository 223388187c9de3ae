package handler

import (
	"errors"
	"net/http"

	"code-showcase/internal/usecase/showcase"
	apperrors "code-showcase/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DataHandler serves the sample data document
type DataHandler struct {
	uc  showcase.Showcase
	log *zap.Logger
}

// NewDataHandler creates a new DataHandler instance
func NewDataHandler(uc showcase.Showcase, log *zap.Logger) *DataHandler {
	return &DataHandler{
		uc:  uc,
		log: log,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// GetData handles GET /api/data. ?format=yaml selects a YAML body, JSON otherwise.
func (h *DataHandler) GetData(c *gin.Context) {
	doc := h.uc.Document(c.Request.Context())

	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, doc)
	case "yaml":
		body, err := yaml.Marshal(doc)
		if err != nil {
			h.handleError(c, apperrors.NewInternalError("failed to encode document as yaml", err))
			return
		}
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", body)
	default:
		h.handleError(c, apperrors.NewValidationError("format", "must be json or yaml"))
	}
}

// handleError answers with the HTTP status carried by err
func (h *DataHandler) handleError(c *gin.Context, err error) {
	status := apperrors.HTTPStatusOf(err)

	var code string
	var vErr *apperrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		code = "validation_error"
	case status >= http.StatusInternalServerError:
		h.log.Error("request failed", zap.Error(err))
		// Internal details stay in the logs
		c.JSON(status, ErrorResponse{Error: "internal_error"})
		return
	default:
		code = "request_error"
	}

	h.log.Warn("request rejected", zap.Int("status", status), zap.Error(err))
	c.JSON(status, ErrorResponse{Error: code, Message: err.Error()})
}
