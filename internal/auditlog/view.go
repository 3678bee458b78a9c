package auditlog

import (
	"context"
	"sync"

	"github.com/frahmantamala/project-console/internal/core/state"
)

const msgLoadFailed = "Failed to load audit logs"

// ListView pages through the audit trail. It is read-only.
type ListView struct {
	*state.List[AuditLog, Filter]
	svc ServiceAPI

	mu    sync.Mutex
	total int
}

func NewListView(svc ServiceAPI, filter Filter, opts ...state.Option) *ListView {
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	v := &ListView{svc: svc}
	v.List = state.NewLoadList(v.load, filter, msgLoadFailed, opts...)
	return v
}

// load defers the total to the commit so it only moves with the items shown.
func (v *ListView) load(ctx context.Context, f Filter) ([]AuditLog, func(), error) {
	resp, err := v.svc.List(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return resp.Items, func() {
		v.mu.Lock()
		v.total = resp.Total
		v.mu.Unlock()
	}, nil
}

// Total is the number of matching records reported by the last fetch.
func (v *ListView) Total() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.total
}

// SetFilter applies new criteria. Changing anything but the page window
// starts again from the first page.
func (v *ListView) SetFilter(ctx context.Context, filter Filter) bool {
	current := v.Filter()
	if filter.Limit <= 0 {
		filter.Limit = current.Limit
	}
	if !filter.sameCriteria(current) {
		filter.Skip = 0
	}
	return v.List.SetFilter(ctx, filter)
}

func (v *ListView) HasNext() bool {
	f := v.Filter()
	return f.Skip+f.Limit < v.Total()
}

func (v *ListView) HasPrev() bool {
	return v.Filter().Skip > 0
}

// NextPage advances one page when there is one.
func (v *ListView) NextPage(ctx context.Context) bool {
	if !v.HasNext() {
		return false
	}
	f := v.Filter()
	f.Skip += f.Limit
	return v.List.SetFilter(ctx, f)
}

func (v *ListView) PrevPage(ctx context.Context) bool {
	f := v.Filter()
	if f.Skip == 0 {
		return false
	}
	f.Skip -= f.Limit
	if f.Skip < 0 {
		f.Skip = 0
	}
	return v.List.SetFilter(ctx, f)
}

// Page is the 1-based page currently shown.
func (v *ListView) Page() int {
	f := v.Filter()
	return f.Skip/f.Limit + 1
}

func (v *ListView) Pages() int {
	limit := v.Filter().Limit
	total := v.Total()
	if total == 0 {
		return 1
	}
	return (total + limit - 1) / limit
}
