package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"employee-service/config"
	"employee-service/db"
	"employee-service/handlers"
	"employee-service/middleware"
	"employee-service/routes"
	"employee-service/secretmanager"
	"employee-service/store"
	"employee-service/telemetry"
	"employee-service/validation"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	mongoSecretName   = "prod/mongo"
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

var (
	loadEnv       = godotenv.Load
	loadConfig    = config.Load
	connectDB     = db.Connect
	initTelemetry = telemetry.Init
	getSecret     = secretmanager.GetSecret
	logFatal      = log.Fatal
)

func loadSecretMap(ctx context.Context, secretName string) (map[string]string, error) {
	secretJSON, err := getSecret(ctx, secretName)
	if err != nil {
		return nil, err
	}

	secrets := make(map[string]string)
	if err := json.Unmarshal([]byte(secretJSON), &secrets); err != nil {
		return nil, fmt.Errorf("error parsing secret %s: %w", secretName, err)
	}
	return secrets, nil
}

// loadProdSecrets exports the Mongo secret's keys (MONGO_URI and friends)
// into the environment ahead of config.Load.
func loadProdSecrets(ctx context.Context) error {
	secrets, err := loadSecretMap(ctx, mongoSecretName)
	if err != nil {
		return fmt.Errorf("error retrieving Mongo secret: %w", err)
	}
	for key, value := range secrets {
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("error exporting secret key %q: %w", key, err)
		}
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		logFatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := loadEnv(); err != nil {
		log.Println("No .env file found; using system environment variables")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}
	log.Println("Environment:", appEnv)

	if appEnv == "prod" {
		if err := loadProdSecrets(ctx); err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	shutdownTelemetry, err := initTelemetry(ctx, cfg.AppEnv, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry error: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			log.Printf("telemetry shutdown error: %v", err)
		}
	}()

	client, err := connectDB(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("error disconnecting from MongoDB: %v", err)
		}
	}()

	database := client.Database(cfg.Mongo.Database)
	users := store.NewMongoUserStore(database, cfg.Mongo.UsersCollection)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}
	employees := store.NewMongoEmployeeStore(database, cfg.Mongo.EmployeesCollection)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           buildHandler(cfg, users, employees, client),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Printf("Starting server on port %s in %s environment (CORS: %s)", cfg.Port, cfg.AppEnv, strings.Join(cfg.CORS.AllowedOrigins, ","))
	return serve(ctx, server)
}

func buildHandler(cfg config.Config, users store.UserStore, employees store.EmployeeStore, pinger handlers.Pinger) http.Handler {
	validator := validation.New()
	router := routes.SetupRoutes(
		handlers.NewAuthHandler(users, validator),
		handlers.NewEmployeeHandler(employees, validator),
		handlers.NewHealthHandler(pinger),
	)

	corsOpts := []gorillaHandlers.CORSOption{
		gorillaHandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With"}),
	}
	// The access log wraps the router so unmatched routes are logged too.
	handler := middleware.RequestLogger(gorillaHandlers.CORS(corsOpts...)(router))
	return otelhttp.NewHandler(handler, cfg.Telemetry.ServiceName)
}

// serve runs server until it fails or ctx is cancelled, then drains it.
func serve(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
