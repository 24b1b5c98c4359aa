package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"employee-service/middleware"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx, readpref.Primary()); err != nil {
		log.Printf("health check failed: %v", err)
		_ = middleware.WriteJSON(w, http.StatusServiceUnavailable, JSONResponse{"status": "unavailable"})
		return
	}
	_ = middleware.WriteJSON(w, http.StatusOK, JSONResponse{"status": "ok"})
}
