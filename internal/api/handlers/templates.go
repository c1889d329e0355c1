package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lokrain/harmonia-api/internal/templates"
)

type TemplatesHandler struct {
	provider *templates.Provider
}

func NewTemplatesHandler(provider *templates.Provider) *TemplatesHandler {
	return &TemplatesHandler{provider: provider}
}

// List handles GET /api/v1/templates.
func (h *TemplatesHandler) List(c *gin.Context) {
	summaries, err := h.provider.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": summaries})
}

// Get handles GET /api/v1/templates/:id.
func (h *TemplatesHandler) Get(c *gin.Context) {
	id := c.Param("id")
	t, err := h.provider.Load(id)
	if err != nil {
		if errors.Is(err, templates.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

// Import handles POST /api/v1/templates. The body is a full template
// document; builtin ids are rejected by the store.
func (h *TemplatesHandler) Import(c *gin.Context) {
	store := h.provider.Store()
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "template storage not configured"})
		return
	}

	var t templates.Template
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.Save(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, templates.Summarize(&t, "local"))
}

// Delete handles DELETE /api/v1/templates/:id. Only stored templates can
// be deleted; builtins 404 here.
func (h *TemplatesHandler) Delete(c *gin.Context) {
	store := h.provider.Store()
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "template storage not configured"})
		return
	}

	if err := store.Delete(c.Param("id")); err != nil {
		if errors.Is(err, templates.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
