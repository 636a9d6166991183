package main

import (
	"context"
	"time"

	authoritysvc "github.com/IncharaS06/vital/internal/api/authority/service"
	issuesvc "github.com/IncharaS06/vital/internal/api/issue/service"
	outboxsvc "github.com/IncharaS06/vital/internal/api/outbox/service"
	"github.com/IncharaS06/vital/internal/delivery/channels"
	"github.com/IncharaS06/vital/internal/escalation"
	"github.com/IncharaS06/vital/internal/global"
	"github.com/IncharaS06/vital/internal/logger"
	"github.com/IncharaS06/vital/internal/worker"
)

// InitEngine wires the escalation engine from the domain services. Must run
// after InitRegistry because the services resolve their collections there.
func InitEngine() *escalation.Engine {
	log := logger.GetAppLogger()

	issueService, err := issuesvc.NewIssueService()
	if err != nil {
		log.Fatalf("Failed to create issue service: %v", err)
	}
	authorityService, err := authoritysvc.NewAuthorityService()
	if err != nil {
		log.Fatalf("Failed to create authority service: %v", err)
	}
	mailQueueService, err := outboxsvc.NewMailQueueService()
	if err != nil {
		log.Fatalf("Failed to create mail queue service: %v", err)
	}

	cfg := global.ServerConfig
	engine := escalation.NewEngine(issueService, authorityService, mailQueueService, escalation.Config{
		BatchSize:   int64(cfg.SweepBatchSize),
		FrontendURL: cfg.FrontendURL,
	}, log)

	log.Info("⏫ [ESCALATION] Engine initialized")
	return engine
}

// StartWorkers launches the background sweep and outbox delivery loops.
func StartWorkers(ctx context.Context, engine *escalation.Engine) {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	sweepWorker := worker.NewEscalationWorker(engine, time.Duration(cfg.SweepIntervalMin)*time.Minute)
	go sweepWorker.Start(ctx)
	log.Infof("⏫ [ESCALATION] Sweep worker started (interval: %dm)", cfg.SweepIntervalMin)

	sender := channels.NewEmailSender(cfg)
	deliveryWorker, err := worker.NewDeliveryWorker(sender, time.Duration(cfg.DeliveryIntervalSec)*time.Second, cfg.DeliveryBatchSize)
	if err != nil {
		log.WithError(err).Error("Failed to create delivery worker, continuing without outbox delivery")
		return
	}
	go deliveryWorker.Start(ctx)
	log.Infof("📨 [DELIVERY] Delivery worker started (interval: %ds)", cfg.DeliveryIntervalSec)
}
