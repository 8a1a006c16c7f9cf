package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"kras-kickers/volunteers/internal/models/entities"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckHandler handles GET /healthCheck
//
// @Summary Health check
// @Description Pings the database and the session store.
// @Tags Misc
// @Success 200 {object} entities.HealthCheckResponse
// @Failure 503 {object} entities.HealthCheckResponse
// @Router /healthCheck [get]
func HealthCheckHandler(database, sessions pinger, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		names := []string{"database", "sessions"}
		pingers := []pinger{database, sessions}
		okDetails := []string{"Database connected", "Session store reachable"}
		statuses := make([]entities.DependencyStatus, len(names))

		var g errgroup.Group
		for i := range names {
			i := i
			g.Go(func() error {
				start := time.Now()
				err := pingers[i].Ping(ctx)
				status := entities.DependencyStatus{Status: "ok", Details: okDetails[i]}
				if err != nil {
					status = entities.DependencyStatus{Status: "down", Details: err.Error()}
				}
				status.LatencyMS = time.Since(start).Milliseconds()
				statuses[i] = status
				return nil
			})
		}
		_ = g.Wait()

		overallStatus := "ok"
		results := make(map[string]entities.DependencyStatus, len(names))
		for i, name := range names {
			results[name] = statuses[i]
			if statuses[i].Status != "ok" {
				overallStatus = "down"
			}
		}

		resp := entities.HealthCheckResponse{
			Dependencies: results,
			Status:       overallStatus,
			UpSince:      upSince,
			Uptime:       time.Since(upSince).Round(time.Second).String(),
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
