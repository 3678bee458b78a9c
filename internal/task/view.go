package task

import (
	"context"

	"github.com/frahmantamala/project-console/internal/core/state"
)

const (
	msgLoadFailed   = "Failed to load tasks"
	msgCreateFailed = "Failed to create task"
	msgUpdateFailed = "Failed to update task"
	msgDeleteFailed = "Failed to delete task"
)

// ListView is the task table of a project or of the whole workspace.
type ListView struct {
	*state.List[Task, ListFilter]
	svc ServiceAPI
}

func NewListView(svc ServiceAPI, filter ListFilter, opts ...state.Option) *ListView {
	fetch := func(ctx context.Context, f ListFilter) ([]Task, error) {
		return svc.List(ctx, f)
	}
	return &ListView{
		List: state.NewList(fetch, filter, msgLoadFailed, opts...),
		svc:  svc,
	}
}

func (v *ListView) Create(ctx context.Context, dto CreateTaskDTO) state.Result[Task] {
	if err := dto.Validate(); err != nil {
		return state.Failed[Task](err.GetDetailedMessage())
	}
	return v.List.Create(ctx, func(ctx context.Context) (Task, error) {
		return state.Value(v.svc.Create(ctx, dto))
	}, msgCreateFailed)
}

func (v *ListView) Update(ctx context.Context, id string, dto UpdateTaskDTO) state.Result[Task] {
	return update(ctx, v.List, v.svc, id, dto)
}

// SetStatus is the quick status change offered on task rows.
func (v *ListView) SetStatus(ctx context.Context, id string, status Status) state.Result[Task] {
	return v.Update(ctx, id, UpdateTaskDTO{Status: &status})
}

func (v *ListView) Delete(ctx context.Context, id string) state.Result[string] {
	return v.List.Delete(ctx, id, func(ctx context.Context) error {
		return v.svc.Delete(ctx, id)
	}, msgDeleteFailed)
}

// MyTasksView lists the tasks assigned to the logged in user.
type MyTasksView struct {
	*state.List[Task, MyTasksFilter]
	svc ServiceAPI
}

func NewMyTasksView(svc ServiceAPI, filter MyTasksFilter, opts ...state.Option) *MyTasksView {
	fetch := func(ctx context.Context, f MyTasksFilter) ([]Task, error) {
		return svc.MyTasks(ctx, f)
	}
	return &MyTasksView{
		List: state.NewList(fetch, filter, msgLoadFailed, opts...),
		svc:  svc,
	}
}

func (v *MyTasksView) Update(ctx context.Context, id string, dto UpdateTaskDTO) state.Result[Task] {
	return update(ctx, v.List, v.svc, id, dto)
}

func (v *MyTasksView) SetStatus(ctx context.Context, id string, status Status) state.Result[Task] {
	return v.Update(ctx, id, UpdateTaskDTO{Status: &status})
}

func update[F any](ctx context.Context, list *state.List[Task, F], svc ServiceAPI, id string, dto UpdateTaskDTO) state.Result[Task] {
	if err := dto.Validate(); err != nil {
		return state.Failed[Task](err.GetDetailedMessage())
	}
	return list.Update(ctx, func(ctx context.Context) (Task, error) {
		return state.Value(svc.Update(ctx, id, dto))
	}, msgUpdateFailed)
}
