package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/splice-sistemas/splice-be/internal/alerts"
	"github.com/splice-sistemas/splice-be/internal/services"
	ws "github.com/splice-sistemas/splice-be/internal/websocket"
)

// DigestJob recomputes the alert list on a cron schedule and publishes the
// severity counts to the audit trail and connected dashboards. Alerts are
// never persisted; only this aggregate snapshot leaves the engine.
type DigestJob struct {
	engine   *alerts.Engine
	auditSvc services.AuditServiceProvider
	hub      *ws.Hub
	schedule cron.Schedule
	done     chan bool
}

// NewDigestJob creates a digest job from a standard cron expression.
func NewDigestJob(engine *alerts.Engine, auditSvc services.AuditServiceProvider, hub *ws.Hub, cronExpr string) (*DigestJob, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid digest cron expression %q: %w", cronExpr, err)
	}
	return &DigestJob{
		engine:   engine,
		auditSvc: auditSvc,
		hub:      hub,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run sleeps until each scheduled activation and fires the digest.
func (j *DigestJob) Run() {
	log.Info().Msg("Starting alert digest job...")
	for {
		next := j.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-j.done:
			timer.Stop()
			log.Info().Msg("Stopping alert digest job.")
			return
		case <-timer.C:
			j.runOnce()
		}
	}
}

// Stop halts the job.
func (j *DigestJob) Stop() {
	j.done <- true
}

func (j *DigestJob) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	computed := j.engine.Compute(ctx)
	summary := alerts.Summarize(computed)

	log.Info().
		Int("total", summary.Total).
		Int("critical", summary.BySeverity["critical"]).
		Int("high", summary.BySeverity["high"]).
		Msg("Alert digest computed")

	j.auditSvc.Record(ctx, nil, "alerts.digest", "alerts", nil, "info",
		fmt.Sprintf("Resumo diário de alertas: %d no total (%d críticos, %d altos)",
			summary.Total, summary.BySeverity["critical"], summary.BySeverity["high"]))

	if j.hub != nil {
		if payload, err := json.Marshal(ws.Message{Action: ws.ActionAlertDigest, Payload: summary}); err == nil {
			j.hub.Broadcast <- payload
		}
	}
}
