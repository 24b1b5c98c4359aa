package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_DATABASE", "")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "3031", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "employee_service", cfg.Mongo.Database)
	assert.Equal(t, "users", cfg.Mongo.UsersCollection)
	assert.Equal(t, "employees", cfg.Mongo.EmployeesCollection)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "employee-service", cfg.Telemetry.ServiceName)
	assert.True(t, cfg.Telemetry.OTLPInsecure)
	assert.Empty(t, cfg.Telemetry.OTLPHeaders)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9000")
	t.Setenv("MONGO_DATABASE", "company")
	t.Setenv("MONGO_EMPLOYEES_COLLECTION", "staff")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.com, http://b.com")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "api-key=secret, tenant=acme")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "prod", cfg.AppEnv)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "company", cfg.Mongo.Database)
	assert.Equal(t, "staff", cfg.Mongo.EmployeesCollection)
	assert.Equal(t, 3*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, map[string]string{"api-key": "secret", "tenant": "acme"}, cfg.Telemetry.OTLPHeaders)
	assert.False(t, cfg.Telemetry.OTLPInsecure)
}

func TestLoadMissingMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidConnectTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MONGO_CONNECT_TIMEOUT", "not-a-duration")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidExportTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OTEL_EXPORTER_OTLP_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidMetricInterval(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OTEL_METRIC_EXPORT_INTERVAL", "often")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidHeaders(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "missing-separator")
	_, err := Load()
	assert.Error(t, err)
}
