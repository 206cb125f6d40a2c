package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type connectionState interface {
	IsClosed() bool
}

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB           *sql.DB
	RabbitMQ     connectionState
	Redis        pinger
	CallerAPIURL string
	Version      string
	StartTime    time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sql.DB, rabbitMQ *amqp091.Connection) *HealthHandler {
	h := &HealthHandler{
		DB:        db,
		Version:   "1.0.0",
		StartTime: time.Now(),
	}
	if rabbitMQ != nil {
		h.RabbitMQ = rabbitMQ
	}
	return h
}

func (h *HealthHandler) WithRedis(p pinger) *HealthHandler {
	h.Redis = p
	return h
}

func (h *HealthHandler) WithCallerAPI(url string) *HealthHandler {
	h.CallerAPIURL = url
	return h
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string)

	if h.DB != nil {
		deps["database"] = healthOf(h.DB.PingContext(ctx))
	} else {
		deps["database"] = "not configured"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if h.Redis != nil {
		deps["redis"] = healthOf(h.Redis.Ping(ctx))
	} else {
		deps["redis"] = "not configured"
	}

	if h.CallerAPIURL != "" {
		deps["caller_api"] = "configured"
	} else {
		deps["caller_api"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}

func healthOf(err error) string {
	if err != nil {
		return fmt.Sprintf("unhealthy: %v", err)
	}
	return "healthy"
}
