package main

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/access"
	"github.com/noah-isme/audit-mgmt-api/internal/handler"
	"github.com/noah-isme/audit-mgmt-api/internal/middleware"
	"github.com/noah-isme/audit-mgmt-api/internal/repository"
	"github.com/noah-isme/audit-mgmt-api/internal/router"
	"github.com/noah-isme/audit-mgmt-api/internal/service"
	"github.com/noah-isme/audit-mgmt-api/pkg/config"
	"github.com/noah-isme/audit-mgmt-api/pkg/jobs"
	"github.com/noah-isme/audit-mgmt-api/pkg/storage"
)

// application holds the wired handlers and the background pieces stopped on shutdown.
type application struct {
	handlers router.Handlers
	access   *middleware.Access
	tokens   middleware.TokenValidator
	metrics  *service.MetricsService
	queue    *jobs.Queue
}

// Shutdown stops background workers.
func (a *application) Shutdown() {
	if a.queue != nil {
		a.queue.Stop()
	}
}

func build(ctx context.Context, cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, logr *zap.Logger) (*application, error) {
	validate := validator.New()
	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.PermissionTTL, logr, cfg.Cache.Enabled)

	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)
	processRepo := repository.NewProcessRepository(db)
	controlRepo := repository.NewControlRepository(db)
	riskRepo := repository.NewRiskRepository(db)
	eventRepo := repository.NewEventRepository(db)
	programRepo := repository.NewAuditProgramRepository(db)
	testRepo := repository.NewAuditTestRepository(db)
	findingRepo := repository.NewFindingRepository(db)
	planRepo := repository.NewActionPlanRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	reportRepo := repository.NewReportRepository(db)

	permissionSvc := service.NewPermissionService(userRepo, cacheSvc, cfg.Cache.PermissionTTL, logr)
	authSvc := service.NewAuthService(userRepo, tokenRepo, auditLogRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})

	guard := access.NewGuard(nil, access.Paths{Home: cfg.Routes.Home, Login: cfg.Routes.Login, Denied: cfg.Routes.Denied})
	accessMW := middleware.NewAccess(guard, permissionSvc, metrics, logr)

	evidence, err := evidenceBackend(ctx, cfg.Evidence)
	if err != nil {
		return nil, err
	}
	evidenceSigner := storage.NewSignedURLSigner(cfg.Evidence.SignedURLSecret, cfg.Evidence.SignedURLTTL)
	documentSvc := service.NewDocumentService(documentRepo, testRepo, evidence, evidenceSigner, auditLogRepo, logr, service.DocumentConfig{
		BackendName:  cfg.Evidence.Backend,
		MaxSizeBytes: cfg.Evidence.MaxFileSizeBytes,
		AllowedMIMEs: cfg.Evidence.AllowedMIMEs,
		APIPrefix:    cfg.APIPrefix,
	})

	reportStore, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("init report storage: %w", err)
	}
	exporter := service.NewExportService(service.ReportSources{
		Programs:  programRepo,
		Tests:     testRepo,
		Findings:  findingRepo,
		Plans:     planRepo,
		Tasks:     taskRepo,
		Companies: companyRepo,
		Risks:     riskRepo,
	}, reportStore, storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL), service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Reports.SignedURLTTL,
	}, logr, nil, nil)
	worker := service.NewReportWorker(reportRepo, exporter, metrics, cfg.Reports.WorkerRetries, logr)
	queue := jobs.NewQueue("reports", worker.Handle, jobs.QueueConfig{
		Workers:    cfg.Reports.WorkerConcurrency,
		MaxRetries: cfg.Reports.WorkerRetries,
		OnGiveUp:   worker.GiveUp,
		Logger:     logr,
	})
	reportSvc := service.NewReportService(reportRepo, service.ReportTargetLookup{Programs: programRepo, Companies: companyRepo}, queue, exporter, auditLogRepo, validate, logr, service.ReportServiceConfig{
		ResultTTL:       cfg.Reports.SignedURLTTL,
		CleanupInterval: cfg.Reports.CleanupInterval,
	})
	if cfg.Reports.Enabled {
		queue.Start(ctx)
		reportSvc.RecoverPendingJobs(ctx)
		reportSvc.StartCleanup(ctx)
	} else {
		logr.Info("report workers disabled")
	}

	roleSvc := service.NewRoleService(roleRepo, permissionSvc, auditLogRepo, validate, logr)

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Access:      handler.NewAccessHandler(accessMW),
		Companies:   handler.NewCompanyHandler(service.NewCompanyService(companyRepo, auditLogRepo, validate, logr)),
		Processes:   handler.NewProcessHandler(service.NewProcessService(processRepo, userRepo, auditLogRepo, validate, logr)),
		Controls:    handler.NewControlHandler(service.NewControlService(controlRepo, auditLogRepo, validate, logr)),
		Risks:       handler.NewRiskHandler(service.NewRiskService(riskRepo, auditLogRepo, validate, logr)),
		Events:      handler.NewEventHandler(service.NewEventService(eventRepo, auditLogRepo, validate, logr)),
		Audits:      handler.NewAuditProgramHandler(service.NewAuditProgramService(programRepo, processRepo, userRepo, auditLogRepo, validate, logr)),
		AuditTests:  handler.NewAuditTestHandler(service.NewAuditTestService(testRepo, programRepo, auditLogRepo, validate, logr)),
		Findings:    handler.NewFindingHandler(service.NewFindingService(findingRepo, testRepo, auditLogRepo, validate, logr)),
		Plans:       handler.NewActionPlanHandler(service.NewActionPlanService(planRepo, eventRepo, findingRepo, taskRepo, userRepo, auditLogRepo, validate, logr)),
		Tasks:       handler.NewTaskHandler(service.NewTaskService(taskRepo, planRepo, auditLogRepo, validate, logr)),
		Users:       handler.NewUserHandler(service.NewUserService(userRepo, roleRepo, permissionSvc, auditLogRepo, validate, logr)),
		Roles:       handler.NewRoleHandler(roleSvc),
		Permissions: handler.NewPermissionHandler(roleSvc),
		Documents:   handler.NewDocumentHandler(documentSvc),
		AuditLogs:   handler.NewAuditLogHandler(service.NewAuditLogService(auditLogRepo)),
		Dashboard:   handler.NewDashboardHandler(service.NewDashboardService(dashboardRepo, riskRepo, cacheSvc, cfg.Cache.DashboardTTL, logr)),
		Reports:     handler.NewReportHandler(reportSvc),
		Metrics:     handler.NewMetricsHandler(metrics),
	}

	return &application{
		handlers: handlers,
		access:   accessMW,
		tokens:   authSvc,
		metrics:  metrics,
		queue:    queue,
	}, nil
}

func evidenceBackend(ctx context.Context, cfg config.EvidenceConfig) (storage.Backend, error) {
	if cfg.Backend == config.StorageBackendS3 {
		backend, err := storage.NewS3Storage(ctx, cfg.S3, cfg.SignedURLTTL)
		if err != nil {
			return nil, fmt.Errorf("init s3 evidence storage: %w", err)
		}
		return backend, nil
	}
	backend, err := storage.NewLocalStorage(cfg.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("init evidence storage: %w", err)
	}
	return backend, nil
}
