package api

import (
	"uptime-report-backend/internal/report"
	"uptime-report-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	manager *report.Manager
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, manager *report.Manager) *Handler {
	return &Handler{
		store:   s,
		manager: manager,
	}
}
