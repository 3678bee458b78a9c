package sandbox

import (
	"net/http"

	"github.com/frahmantamala/project-console/internal/expense"
	"github.com/go-chi/chi"
)

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id := chi.URLParam(r, "projectID")
	if _, ok := s.data.projects.get(id); !ok {
		s.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	s.WriteJSON(w, http.StatusOK, paginate(s.data.expensesOf(id), pageFrom(r)))
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var dto expense.CreateExpenseDTO
	if !s.DecodeJSON(w, r, &dto) || !s.validate(w, dto.Validate()) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.data.projects.get(chi.URLParam(r, "projectID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}

	now := s.now().UTC()
	creator := principal(r).UserID
	e := &expense.Expense{
		ID:          newID(),
		ProjectID:   p.ID,
		Amount:      dto.Amount,
		Description: dto.Description,
		Category:    dto.Category,
		RecordedAt:  now,
		CreatedByID: &creator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if dto.RecordedAt != nil {
		e.RecordedAt = dto.RecordedAt.UTC()
	}
	s.data.expenses.put(e.ID, e)
	s.data.recomputeSpent(p.ID, now)

	s.record(r, "create", "expense", e.ID, e.Description, map[string]interface{}{
		"project_id": p.ID,
		"amount":     e.Amount,
	})
	s.WriteJSON(w, http.StatusCreated, e)
}

func (s *Server) budgetSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data.projects.get(chi.URLParam(r, "projectID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Project not found")
		return
	}
	s.WriteJSON(w, http.StatusOK, expense.BudgetSummary{
		ProjectID:       p.ID,
		Budget:          p.Budget,
		Spent:           p.Spent,
		Remaining:       p.Remaining(),
		UsagePercentage: p.UsagePercent(),
		IsOverBudget:    p.IsOverBudget(),
		ExpenseCount:    len(s.data.expensesOf(p.ID)),
	})
}

func (s *Server) getExpense(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data.expenses.get(chi.URLParam(r, "expenseID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Expense not found")
		return
	}
	s.WriteJSON(w, http.StatusOK, e)
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	var dto expense.UpdateExpenseDTO
	if !s.DecodeJSON(w, r, &dto) || !s.validate(w, dto.Validate()) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data.expenses.get(chi.URLParam(r, "expenseID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Expense not found")
		return
	}
	if dto.Amount != nil {
		e.Amount = *dto.Amount
	}
	if dto.Description != nil {
		e.Description = *dto.Description
	}
	if dto.Category != nil {
		e.Category = dto.Category
	}
	if dto.RecordedAt != nil {
		e.RecordedAt = dto.RecordedAt.UTC()
	}
	now := s.now().UTC()
	e.UpdatedAt = now
	s.data.recomputeSpent(e.ProjectID, now)

	s.record(r, "update", "expense", e.ID, e.Description, nil)
	s.WriteJSON(w, http.StatusOK, e)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "expenseID")
	e, ok := s.data.expenses.get(id)
	if !ok {
		s.WriteError(w, http.StatusNotFound, "Expense not found")
		return
	}
	s.data.expenses.remove(id)
	s.data.recomputeSpent(e.ProjectID, s.now().UTC())

	s.record(r, "delete", "expense", id, e.Description, map[string]interface{}{"project_id": e.ProjectID})
	s.WriteNoContent(w)
}
