package sandbox

import (
	"net/http"
	"time"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status  HealthStatus   `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	s.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// health reports the row counts of the in-memory store.
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	details := map[string]any{
		"users":    len(s.data.accounts.rows),
		"projects": len(s.data.projects.rows),
		"tasks":    len(s.data.tasks.rows),
		"expenses": len(s.data.expenses.rows),
	}
	s.mu.RUnlock()

	s.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    HealthHealthy,
		CheckedAt: s.now(),
		Components: map[string]CheckEntry{
			"memory_store": {Status: HealthHealthy, Details: details},
		},
	})
}
