package planner

import (
	"context"
	"errors"
	"time"

	"github.com/lokrain/harmonia-api/internal/logger"
	"github.com/lokrain/harmonia-api/internal/metrics"
	"github.com/lokrain/harmonia-api/internal/templates"
	"github.com/lokrain/harmonia-api/internal/theory"
)

// Sentry metrics instance
var sentryMetrics = metrics.NewSentryMetrics()

// Request is one planning job: the key, the song form, and the style.
type Request struct {
	Tonic      string
	Mode       string
	TemplateID string
	Profile    StyleProfile
}

// Service resolves a request's key and template, runs the search, and
// assembles the plan. Safe for concurrent use; each Plan call is
// independent.
type Service struct {
	provider *templates.Provider
	metrics  metrics.Recorder
}

func NewService(provider *templates.Provider, rec metrics.Recorder) *Service {
	if rec == nil {
		rec = metrics.Noop{}
	}
	return &Service{provider: provider, metrics: rec}
}

// Plan validates and runs one planning request. All failures come back as
// *PlanError so callers can dispatch on the kind.
func (s *Service) Plan(ctx context.Context, req Request) (*Plan, error) {
	key, err := theory.NewKey(req.Tonic, req.Mode)
	if err != nil {
		return nil, planErr(KindUnknownKey, err)
	}

	tmpl, err := s.provider.Load(req.TemplateID)
	if err != nil {
		if errors.Is(err, templates.ErrNotFound) {
			return nil, planErrf(KindUnknownTemplate, "template %q not found", req.TemplateID)
		}
		return nil, planErr(KindInternal, err)
	}

	profile := req.Profile
	if err := profile.Validate(); err != nil {
		return nil, planErr(KindInvalidStyleProfile, err)
	}

	started := time.Now()
	result, err := search(ctx, key, tmpl, profile)
	elapsed := time.Since(started)
	sentryMetrics.RecordPlanSearch(ctx, tmpl.ID, tmpl.TotalBars(), profile.BeamWidth, elapsed, err == nil)
	if err != nil {
		var planFailure *PlanError
		if errors.As(err, &planFailure) {
			s.metrics.PlanFailed(string(planFailure.Kind))
			return nil, err
		}
		s.metrics.PlanFailed(string(KindInternal))
		return nil, planErr(KindInternal, err)
	}

	s.metrics.PlanCompleted(tmpl.TotalBars(), profile.BeamWidth, elapsed)
	logger.Info("plan search completed", logger.Fields{
		"template":    tmpl.ID,
		"key":         key.Label(),
		"bars":        tmpl.TotalBars(),
		"beam_width":  profile.BeamWidth,
		"duration_ms": elapsed.Milliseconds(),
	})

	source := "local"
	if _, ok := templates.Builtin(tmpl.ID); ok {
		source = "builtin"
	}
	return assemble(key, tmpl, source, profile, result), nil
}
