package api

import (
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/store"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/worker"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
	pool  *worker.Pool
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, pool *worker.Pool) *Handler {
	return &Handler{
		store: s,
		pool:  pool,
	}
}
