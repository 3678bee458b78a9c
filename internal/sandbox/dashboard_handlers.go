package sandbox

import (
	"net/http"

	"github.com/frahmantamala/project-console/internal/dashboard"
	"github.com/frahmantamala/project-console/internal/project"
)

func (s *Server) dashboardStats(w http.ResponseWriter, r *http.Request) {
	me := principal(r).UserID

	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.today()
	var stats dashboard.Stats
	for _, p := range s.data.projects.rows {
		stats.TotalProjects++
		stats.TotalBudget += p.Budget
		stats.TotalSpent += p.Spent
		switch p.Status {
		case project.StatusPlanning:
			stats.ProjectsByStatus.Planning++
		case project.StatusInProgress:
			stats.ProjectsByStatus.InProgress++
		case project.StatusCompleted:
			stats.ProjectsByStatus.Completed++
		case project.StatusArchived:
			stats.ProjectsByStatus.Archived++
		}
		if projectOverdue(*p, today) {
			stats.OverdueProjects++
		}
	}
	if stats.TotalBudget > 0 {
		stats.BudgetUsageRate = stats.TotalSpent / stats.TotalBudget * 100
	}

	for _, t := range s.data.tasks.rows {
		stats.TotalTasks++
		if taskOverdue(*t, today) {
			stats.OverdueTasks++
		}
		if t.AssigneeID != nil && *t.AssigneeID == me && !t.Status.Done() {
			stats.MyPendingTasks++
		}
	}
	s.WriteJSON(w, http.StatusOK, stats)
}
