package sandbox

import (
	"sort"
	"time"

	"github.com/frahmantamala/project-console/internal/auditlog"
	"github.com/frahmantamala/project-console/internal/document"
	"github.com/frahmantamala/project-console/internal/expense"
	"github.com/frahmantamala/project-console/internal/project"
	"github.com/frahmantamala/project-console/internal/task"
	"github.com/frahmantamala/project-console/internal/user"
)

// table keeps rows addressable by id and remembers insertion order.
type table[T any] struct {
	rows  map[string]*T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]*T)}
}

func (t *table[T]) put(id string, row *T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) get(id string) (*T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) newestFirst() []*T {
	out := make([]*T, 0, len(t.order))
	for i := len(t.order) - 1; i >= 0; i-- {
		out = append(out, t.rows[t.order[i]])
	}
	return out
}

type account struct {
	user.User
	passwordHash []byte
}

// data is the whole backend state. Callers hold Server.mu.
type data struct {
	accounts *table[account]
	projects *table[project.Project]
	members  *table[project.Member]
	links    *table[document.Link]
	tasks    *table[task.Task]
	expenses *table[expense.Expense]
	audit    *table[auditlog.AuditLog]
}

func newData() *data {
	return &data{
		accounts: newTable[account](),
		projects: newTable[project.Project](),
		members:  newTable[project.Member](),
		links:    newTable[document.Link](),
		tasks:    newTable[task.Task](),
		expenses: newTable[expense.Expense](),
		audit:    newTable[auditlog.AuditLog](),
	}
}

func (d *data) accountByEmail(email string) (*account, bool) {
	for _, a := range d.accounts.rows {
		if a.Email == email {
			return a, true
		}
	}
	return nil, false
}

func (d *data) membersOf(projectID string) []project.Member {
	out := []project.Member{}
	for _, id := range d.members.order {
		if m := d.members.rows[id]; m.ProjectID == projectID {
			out = append(out, *m)
		}
	}
	return out
}

func (d *data) linksOf(projectID string) []document.Link {
	out := []document.Link{}
	for _, id := range d.links.order {
		if l := d.links.rows[id]; l.ProjectID == projectID {
			out = append(out, *l)
		}
	}
	return out
}

func (d *data) expensesOf(projectID string) []expense.Expense {
	out := []expense.Expense{}
	for _, e := range d.expenses.newestFirst() {
		if e.ProjectID == projectID {
			out = append(out, *e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	return out
}

// recomputeSpent keeps Project.Spent equal to the sum of its expenses.
func (d *data) recomputeSpent(projectID string, now time.Time) {
	p, ok := d.projects.get(projectID)
	if !ok {
		return
	}
	p.Spent = expense.Total(d.expensesOf(projectID))
	p.UpdatedAt = now
}

// withOwner fills the embedded owner of p from the accounts table.
func (d *data) withOwner(p project.Project) project.Project {
	if a, ok := d.accounts.get(p.OwnerID); ok {
		p.Owner = a.User
	}
	return p
}

func (d *data) withAssignee(t task.Task, today string) task.Task {
	t.Assignee, t.AssigneeName = nil, nil
	if t.AssigneeID != nil {
		if a, ok := d.accounts.get(*t.AssigneeID); ok {
			u := a.User
			t.Assignee = &u
			t.AssigneeName = &u.Name
		}
	}
	t.IsOverdue = taskOverdue(t, today)
	return t
}

func taskOverdue(t task.Task, today string) bool {
	return t.DueDate != nil && *t.DueDate != "" && *t.DueDate < today && !t.Status.Done()
}

func projectOverdue(p project.Project, today string) bool {
	if p.EndDate == nil || *p.EndDate == "" {
		return false
	}
	return *p.EndDate < today && p.Status != project.StatusCompleted && p.Status != project.StatusArchived
}
