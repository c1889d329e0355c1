package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lokrain/harmonia-api/internal/api/middleware"
	"github.com/lokrain/harmonia-api/internal/planner"
)

const planTimeoutSecs = 30

// statusClientClosedRequest mirrors the nginx convention for requests the
// client abandoned before the search finished.
const statusClientClosedRequest = 499

type PlanHandler struct {
	service *planner.Service
}

func NewPlanHandler(service *planner.Service) *PlanHandler {
	return &PlanHandler{service: service}
}

// StyleSelection names a preset and optionally overrides individual
// weights on top of it. An empty preset means "balanced".
type StyleSelection struct {
	Preset    string          `json:"preset"`
	Overrides *StyleOverrides `json:"overrides"`
}

// StyleOverrides carries per-field overrides; nil fields keep the preset
// value.
type StyleOverrides struct {
	BeamWidth                *int     `json:"beam_width"`
	MaxDepth                 *int     `json:"max_depth"`
	RiskLevel                *float64 `json:"risk_level"`
	ReharmDepth              *float64 `json:"reharm_depth"`
	VoiceLeadingStrictness   *float64 `json:"voice_leading_strictness"`
	ModulationAggressiveness *float64 `json:"modulation_aggressiveness"`
	MaxChordComplexity       *float64 `json:"max_chord_complexity"`
}

type PlanRequest struct {
	Tonic      string         `json:"tonic" binding:"required"`
	Mode       string         `json:"mode" binding:"required"`
	TemplateID string         `json:"template_id" binding:"required"`
	Style      StyleSelection `json:"style"`
	Explain    string         `json:"explain"`
}

// Plan handles POST /api/v1/plan.
func (h *PlanHandler) Plan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := resolveProfile(req.Style, req.Explain)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      err.Error(),
			"kind":       string(planner.KindInvalidStyleProfile),
			"request_id": c.GetString("request_id"),
		})
		return
	}

	// Get user from gateway headers (for logging - auth handled upstream)
	userID, _ := middleware.GetUserIDFromGateway(c)
	log.Printf("🎼 Plan request from user %s: %s %s, template %s", userID, req.Tonic, req.Mode, req.TemplateID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), planTimeoutSecs*time.Second)
	defer cancel()

	plan, err := h.service.Plan(ctx, planner.Request{
		Tonic:      req.Tonic,
		Mode:       req.Mode,
		TemplateID: req.TemplateID,
		Profile:    profile,
	})
	if err != nil {
		writePlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// resolveProfile builds the effective style profile: preset, then
// overrides, then the explain mode. Validation happens in the planner;
// only preset resolution can fail here.
func resolveProfile(style StyleSelection, explain string) (planner.StyleProfile, error) {
	profile := planner.DefaultProfile()
	if style.Preset != "" {
		p, ok := planner.Preset(style.Preset)
		if !ok {
			return planner.StyleProfile{}, errors.New("unknown style preset " + style.Preset)
		}
		profile = p
	}

	if o := style.Overrides; o != nil {
		if o.BeamWidth != nil {
			profile.BeamWidth = *o.BeamWidth
		}
		if o.MaxDepth != nil {
			profile.MaxDepth = *o.MaxDepth
		}
		if o.RiskLevel != nil {
			profile.RiskLevel = *o.RiskLevel
		}
		if o.ReharmDepth != nil {
			profile.ReharmDepth = *o.ReharmDepth
		}
		if o.VoiceLeadingStrictness != nil {
			profile.VoiceLeadingStrictness = *o.VoiceLeadingStrictness
		}
		if o.ModulationAggressiveness != nil {
			profile.ModulationAggressive = *o.ModulationAggressiveness
		}
		if o.MaxChordComplexity != nil {
			profile.MaxChordComplexity = *o.MaxChordComplexity
		}
	}

	if explain != "" {
		profile.Explain = planner.ExplainMode(explain)
	}
	return profile, nil
}

// writePlanError maps planner failure kinds onto HTTP statuses: request
// mistakes are 400, unknown templates 404, structurally unsatisfiable
// requests 422.
func writePlanError(c *gin.Context, err error) {
	var planErr *planner.PlanError
	if !errors.As(err, &planErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body := gin.H{
		"error":      planErr.Error(),
		"kind":       string(planErr.Kind),
		"request_id": c.GetString("request_id"),
	}

	switch planErr.Kind {
	case planner.KindUnknownKey, planner.KindInvalidStyleProfile:
		c.JSON(http.StatusBadRequest, body)
	case planner.KindUnknownTemplate:
		c.JSON(http.StatusNotFound, body)
	case planner.KindInsufficientDepth:
		c.JSON(http.StatusUnprocessableEntity, body)
	case planner.KindNoViableContinuation:
		body["bar"] = planErr.Bar + 1
		c.JSON(http.StatusUnprocessableEntity, body)
	case planner.KindCancelled:
		c.JSON(statusClientClosedRequest, body)
	default:
		c.JSON(http.StatusInternalServerError, body)
	}
}
