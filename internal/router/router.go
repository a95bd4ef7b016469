// Package router declares every HTTP route together with the access rules
// the guard evaluates before the handler runs.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/access"
	"github.com/noah-isme/audit-mgmt-api/internal/handler"
	"github.com/noah-isme/audit-mgmt-api/internal/middleware"
	"github.com/noah-isme/audit-mgmt-api/internal/service"
	"github.com/noah-isme/audit-mgmt-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/audit-mgmt-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/audit-mgmt-api/pkg/middleware/requestid"
)

// Handlers groups the HTTP handlers mounted under the API prefix.
type Handlers struct {
	Auth        *handler.AuthHandler
	Access      *handler.AccessHandler
	Companies   *handler.CompanyHandler
	Processes   *handler.ProcessHandler
	Controls    *handler.ControlHandler
	Risks       *handler.RiskHandler
	Events      *handler.EventHandler
	Audits      *handler.AuditProgramHandler
	AuditTests  *handler.AuditTestHandler
	Findings    *handler.FindingHandler
	Plans       *handler.ActionPlanHandler
	Tasks       *handler.TaskHandler
	Users       *handler.UserHandler
	Roles       *handler.RoleHandler
	Permissions *handler.PermissionHandler
	Documents   *handler.DocumentHandler
	AuditLogs   *handler.AuditLogHandler
	Dashboard   *handler.DashboardHandler
	Reports     *handler.ReportHandler
	Metrics     *handler.MetricsHandler
}

// Options configures the engine.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
	LoginPerMinute int
}

// Dependencies are the shared pieces the route table needs besides handlers.
type Dependencies struct {
	Access       *middleware.Access
	Tokens       middleware.TokenValidator
	LoginLimiter middleware.Allower
	Metrics      *service.MetricsService
	Logger       *zap.Logger
}

// Route is one entry of the route table.
type Route struct {
	Method     string
	Path       string
	Rules      []string
	Middleware []gin.HandlerFunc
	Handler    gin.HandlerFunc
}

// New builds the gin engine with global middleware, operational endpoints and the API routes.
func New(h Handlers, deps Dependencies, opts Options) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", h.Metrics.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)
	api.Use(middleware.OptionalJWT(deps.Tokens))
	loginLimit := middleware.RateLimit(deps.LoginLimiter, "login", opts.LoginPerMinute, deps.Logger)
	for _, route := range Routes(h, loginLimit) {
		chain := make([]gin.HandlerFunc, 0, len(route.Middleware)+2)
		chain = append(chain, route.Middleware...)
		chain = append(chain, deps.Access.Require(route.Rules...), route.Handler)
		api.Handle(route.Method, route.Path, chain...)
	}
	return r
}

// Routes returns the API route table. Paths are relative to the API prefix.
func Routes(h Handlers, loginLimit gin.HandlerFunc) []Route {
	routes := []Route{
		{Method: http.MethodPost, Path: "/auth/login", Rules: rules(access.RuleGuest), Middleware: []gin.HandlerFunc{loginLimit}, Handler: h.Auth.Login},
		{Method: http.MethodPost, Path: "/auth/refresh", Rules: rules(access.RuleGuest), Handler: h.Auth.Refresh},
		{Method: http.MethodPost, Path: "/auth/logout", Rules: rules(access.RuleAuth), Handler: h.Auth.Logout},
		{Method: http.MethodPost, Path: "/auth/change-password", Rules: rules(access.RuleAuth), Handler: h.Auth.ChangePassword},
		{Method: http.MethodGet, Path: "/auth/me", Rules: rules(access.RuleAuth), Handler: h.Auth.Me},
		{Method: http.MethodGet, Path: "/access/check", Handler: h.Access.Check},
	}

	routes = append(routes, crud("/companies", "company", h.Companies.List, h.Companies.Get, h.Companies.Create, h.Companies.Update, h.Companies.Delete)...)
	routes = append(routes, crud("/processes", "process", h.Processes.List, h.Processes.Get, h.Processes.Create, h.Processes.Update, h.Processes.Delete)...)
	routes = append(routes,
		link("/processes/:id/responsibles", "process", h.Processes.SetResponsibles),
		link("/processes/:id/controls", "process", h.Processes.SetControls),
	)
	routes = append(routes, crud("/controls", "control", h.Controls.List, h.Controls.Get, h.Controls.Create, h.Controls.Update, h.Controls.Delete)...)
	routes = append(routes, link("/controls/:id/risks", "control", h.Controls.SetRisks))
	routes = append(routes, crud("/risks", "risk", h.Risks.List, h.Risks.Get, h.Risks.Create, h.Risks.Update, h.Risks.Delete)...)
	routes = append(routes, link("/risks/:id/processes", "risk", h.Risks.SetProcesses))
	routes = append(routes, crud("/events", "event", h.Events.List, h.Events.Get, h.Events.Create, h.Events.Update, h.Events.Delete)...)
	routes = append(routes, link("/events/:id/risks", "event", h.Events.SetRisks))
	routes = append(routes, crud("/audits", "audit", h.Audits.List, h.Audits.Get, h.Audits.Create, h.Audits.Update, h.Audits.Delete)...)
	routes = append(routes,
		link("/audits/:id/participants", "audit", h.Audits.SetParticipants),
		link("/audits/:id/scope", "audit", h.Audits.SetScope),
	)
	routes = append(routes, crud("/audit-tests", "audit_test", h.AuditTests.List, h.AuditTests.Get, h.AuditTests.Create, h.AuditTests.Update, h.AuditTests.Delete)...)
	routes = append(routes,
		link("/audit-tests/:id/participants", "audit_test", h.AuditTests.SetParticipants),
		link("/audit-tests/:id/controls", "audit_test", h.AuditTests.SetControls),
	)
	routes = append(routes, crud("/findings", "finding", h.Findings.List, h.Findings.Get, h.Findings.Create, h.Findings.Update, h.Findings.Delete)...)
	routes = append(routes, link("/findings/:id/controls", "finding", h.Findings.SetControls))
	routes = append(routes, crud("/plans", "plan", h.Plans.List, h.Plans.Get, h.Plans.Create, h.Plans.Update, h.Plans.Delete)...)
	routes = append(routes, link("/plans/:id/responsibles", "plan", h.Plans.SetResponsibles))
	routes = append(routes,
		Route{Method: http.MethodGet, Path: "/plans/:id/tasks", Rules: rules(access.Key("get", "task")), Handler: h.Tasks.List},
		Route{Method: http.MethodPost, Path: "/plans/:id/tasks", Rules: rules(access.Key("create", "task")), Handler: h.Tasks.Create},
		Route{Method: http.MethodGet, Path: "/tasks/:id", Rules: rules(access.Key("get", "task")), Handler: h.Tasks.Get},
		Route{Method: http.MethodPut, Path: "/tasks/:id", Rules: rules(access.Key("update", "task")), Handler: h.Tasks.Update},
		Route{Method: http.MethodDelete, Path: "/tasks/:id", Rules: rules(access.Key("delete", "task")), Handler: h.Tasks.Delete},
	)
	routes = append(routes, crud("/users", "user", h.Users.List, h.Users.Get, h.Users.Create, h.Users.Update, h.Users.Delete)...)
	routes = append(routes, crud("/roles", "role", h.Roles.List, h.Roles.Get, h.Roles.Create, h.Roles.Update, h.Roles.Delete)...)
	routes = append(routes, link("/roles/:id/permissions", "role", h.Roles.SetPermissions))
	routes = append(routes,
		Route{Method: http.MethodGet, Path: "/permissions", Rules: rules(access.Key("get", "permission")), Handler: h.Permissions.List},
		Route{Method: http.MethodPut, Path: "/permissions/:id", Rules: rules(access.Key("update", "permission")), Handler: h.Permissions.SetStatus},

		Route{Method: http.MethodGet, Path: "/audit-tests/:id/documents", Rules: rules(access.Key("get", "document")), Handler: h.Documents.List},
		Route{Method: http.MethodPost, Path: "/audit-tests/:id/documents", Rules: rules(access.Key("create", "document")), Handler: h.Documents.Upload},
		Route{Method: http.MethodGet, Path: "/documents/:id/link", Rules: rules(access.Key("get", "document")), Handler: h.Documents.Link},
		Route{Method: http.MethodDelete, Path: "/documents/:id", Rules: rules(access.Key("delete", "document")), Handler: h.Documents.Delete},
		Route{Method: http.MethodGet, Path: "/documents/download", Handler: h.Documents.Download},

		Route{Method: http.MethodGet, Path: "/audit-logs", Rules: rules(access.Key("get", "audit_log")), Handler: h.AuditLogs.List},
		Route{Method: http.MethodGet, Path: "/dashboard", Rules: rules(access.Key("get", "dashboard")), Handler: h.Dashboard.Summary},
		Route{Method: http.MethodGet, Path: "/metrics/summary", Rules: rules(access.Key("get", "dashboard")), Handler: h.Metrics.Snapshot},

		Route{Method: http.MethodPost, Path: "/reports", Rules: rules(access.Key("create", "report")), Handler: h.Reports.Create},
		Route{Method: http.MethodGet, Path: "/reports/download", Handler: h.Reports.Download},
		Route{Method: http.MethodGet, Path: "/reports/:id", Rules: rules(access.Key("get", "report")), Handler: h.Reports.Status},
	)
	return routes
}

func crud(path, resource string, list, get, create, update, remove gin.HandlerFunc) []Route {
	return []Route{
		{Method: http.MethodGet, Path: path, Rules: rules(access.Key("get", resource)), Handler: list},
		{Method: http.MethodGet, Path: path + "/:id", Rules: rules(access.Key("get", resource)), Handler: get},
		{Method: http.MethodPost, Path: path, Rules: rules(access.Key("create", resource)), Handler: create},
		{Method: http.MethodPut, Path: path + "/:id", Rules: rules(access.Key("update", resource)), Handler: update},
		{Method: http.MethodDelete, Path: path + "/:id", Rules: rules(access.Key("delete", resource)), Handler: remove},
	}
}

// link endpoints replace a relation set and need the update permission of the owner.
func link(path, resource string, h gin.HandlerFunc) Route {
	return Route{Method: http.MethodPut, Path: path, Rules: rules(access.Key("update", resource)), Handler: h}
}

func rules(r ...string) []string {
	return r
}
