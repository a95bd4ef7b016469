package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "audit_mgmt", cfg.Database.Name)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiration)
	assert.Equal(t, 5*time.Minute, cfg.Cache.PermissionTTL)
	assert.Equal(t, 10, cfg.RateLimit.LoginPerMinute)
	assert.Equal(t, RoutesConfig{Home: "/", Login: "/login", Denied: "/403"}, cfg.Routes)
	assert.Equal(t, StorageBackendLocal, cfg.Evidence.Backend)
	assert.Equal(t, int64(20*1024*1024), cfg.Evidence.MaxFileSizeBytes)
	assert.Contains(t, cfg.Evidence.AllowedMIMEs, "application/pdf")
	assert.Equal(t, 3, cfg.Reports.WorkerRetries)
	assert.Equal(t, "admin@auditoria.local", cfg.Seed.AdminEmail)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("JWT_EXPIRATION", "not-a-duration")
	t.Setenv("EVIDENCE_BACKEND", "S3")
	t.Setenv("ROUTE_DENIED", "/sin-permiso")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, StorageBackendS3, cfg.Evidence.Backend)
	assert.Equal(t, "/sin-permiso", cfg.Routes.Denied)
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "audit", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=audit sslmode=disable", cfg.DSN())
}
