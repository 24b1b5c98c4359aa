package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv    string
	Port      string
	Mongo     MongoConfig
	CORS      CORSConfig
	Telemetry TelemetryConfig
}

type MongoConfig struct {
	URI                 string
	Database            string
	UsersCollection     string
	EmployeesCollection string
	ConnectTimeout      time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type TelemetryConfig struct {
	ServiceName          string
	ServiceVersion       string
	OTLPEndpoint         string
	OTLPTracesEndpoint   string
	OTLPMetricsEndpoint  string
	OTLPProtocol         string
	OTLPHeaders          map[string]string
	OTLPInsecure         bool
	ExportTimeout        time.Duration
	MetricExportInterval time.Duration
}

func Load() (Config, error) {
	appEnv := getEnv("APP_ENV", "dev")

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		return Config{}, errors.New("MONGO_URI must be set")
	}

	connectTimeout, err := time.ParseDuration(getEnv("MONGO_CONNECT_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid MONGO_CONNECT_TIMEOUT: %w", err)
	}

	exportTimeout, err := time.ParseDuration(getEnv("OTEL_EXPORTER_OTLP_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid OTEL_EXPORTER_OTLP_TIMEOUT: %w", err)
	}

	metricInterval, err := time.ParseDuration(getEnv("OTEL_METRIC_EXPORT_INTERVAL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid OTEL_METRIC_EXPORT_INTERVAL: %w", err)
	}

	headers, err := parseHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv: appEnv,
		Port:   getEnv("PORT", "3031"),
		Mongo: MongoConfig{
			URI:                 mongoURI,
			Database:            getEnv("MONGO_DATABASE", "employee_service"),
			UsersCollection:     getEnv("MONGO_USERS_COLLECTION", "users"),
			EmployeesCollection: getEnv("MONGO_EMPLOYEES_COLLECTION", "employees"),
			ConnectTimeout:      connectTimeout,
		},
		CORS: CORSConfig{
			AllowedOrigins: parseCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Telemetry: TelemetryConfig{
			ServiceName:          getEnv("OTEL_SERVICE_NAME", "employee-service"),
			ServiceVersion:       getEnv("OTEL_SERVICE_VERSION", "dev"),
			OTLPEndpoint:         os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			OTLPTracesEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"),
			OTLPMetricsEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"),
			OTLPProtocol:         getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
			OTLPHeaders:          headers,
			OTLPInsecure:         getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", appEnv != "prod"),
			ExportTimeout:        exportTimeout,
			MetricExportInterval: metricInterval,
		},
	}

	if cfg.Mongo.Database == "" {
		return Config{}, errors.New("MONGO_DATABASE must not be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(value string) []string {
	parts := strings.Split(value, ",")
	var results []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

// parseHeaders reads the OTLP "key=value,key2=value2" header format.
func parseHeaders(value string) (map[string]string, error) {
	headers := make(map[string]string)
	for _, pair := range parseCSV(value) {
		key, val, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid OTEL_EXPORTER_OTLP_HEADERS entry: %s", pair)
		}
		headers[key] = strings.TrimSpace(val)
	}
	return headers, nil
}
