package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lokrain/harmonia-api/internal/planner"
)

// StylePreset is one named preset with its full weight set.
type StylePreset struct {
	Name    string               `json:"name"`
	Profile planner.StyleProfile `json:"profile"`
}

// ListStyles handles GET /api/v1/styles.
func ListStyles(c *gin.Context) {
	names := planner.PresetNames()
	out := make([]StylePreset, 0, len(names))
	for _, name := range names {
		profile, _ := planner.Preset(name)
		out = append(out, StylePreset{Name: name, Profile: profile})
	}
	c.JSON(http.StatusOK, gin.H{"presets": out, "default": "balanced"})
}
