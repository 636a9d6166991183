// Package worker holds the background loops: the scheduled escalation sweep
// and the outbox delivery drain.
package worker

import (
	"context"
	"time"

	"github.com/IncharaS06/vital/internal/escalation"
	"github.com/IncharaS06/vital/internal/logger"
)

// EscalationWorker runs the engine's sweep on a fixed period. The engine is
// safe under concurrent invocations, so an operator hitting the on-demand
// endpoint while the ticker fires is fine.
type EscalationWorker struct {
	engine   *escalation.Engine
	interval time.Duration
}

// NewEscalationWorker creates the sweep worker. interval below a minute is
// clamped to the 60-minute default.
func NewEscalationWorker(engine *escalation.Engine, interval time.Duration) *EscalationWorker {
	if interval < time.Minute {
		interval = 60 * time.Minute
	}
	return &EscalationWorker{
		engine:   engine,
		interval: interval,
	}
}

// Start runs the sweep loop until ctx is cancelled. Each tick is isolated
// with recover so a panic never kills the loop.
func (w *EscalationWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("⏫ [ESCALATION] Starting Escalation Sweep Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("⏫ [ESCALATION] Escalation Sweep Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("⏫ [ESCALATION] Panic during sweep, will retry next tick")
					}
				}()

				result, err := w.engine.RunSweep(ctx, time.Now())
				if err != nil {
					log.WithError(err).Error("⏫ [ESCALATION] Sweep failed")
					return
				}
				if len(result.Escalations) > 0 {
					log.WithFields(map[string]interface{}{
						"processed": result.ProcessedCount,
						"escalated": len(result.Escalations),
					}).Info("⏫ [ESCALATION] Sweep escalated issues")
				}
			}()
		}
	}
}
