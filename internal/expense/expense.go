package expense

import "time"

type Expense struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    *string   `json:"category"`
	RecordedAt  time.Time `json:"recorded_at"`
	CreatedByID *string   `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e Expense) GetID() string {
	return e.ID
}

type BudgetSummary struct {
	ProjectID       string  `json:"project_id"`
	Budget          float64 `json:"budget"`
	Spent           float64 `json:"spent"`
	Remaining       float64 `json:"remaining"`
	UsagePercentage float64 `json:"usage_percentage"`
	IsOverBudget    bool    `json:"is_over_budget"`
	ExpenseCount    int     `json:"expense_count"`
}

// Total sums the amounts of expenses.
func Total(expenses []Expense) float64 {
	var sum float64
	for _, e := range expenses {
		sum += e.Amount
	}
	return sum
}
