package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"restaurant-api/store"
)

// StatsController serves the admin dashboard aggregates
type StatsController struct {
	Store store.StatsStore
}

// NewStatsController creates a new StatsController
func NewStatsController(s store.StatsStore) *StatsController {
	return &StatsController{Store: s}
}

// GetStats reports estimated counts and total revenue (Admin only)
func (sc *StatsController) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	stats, err := sc.Store.Totals(ctx)
	if err != nil {
		logrus.WithError(err).Error("aggregating stats")
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// GetOrderStats reports the per-category purchase breakdown (Admin only)
func (sc *StatsController) GetOrderStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	stats, err := sc.Store.OrderStats(ctx)
	if err != nil {
		logrus.WithError(err).Error("aggregating order stats")
		http.Error(w, "Error fetching order stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
