package project

import (
	"context"

	"github.com/frahmantamala/project-console/internal/core/state"
)

const (
	msgLoadFailed   = "Failed to load projects"
	msgCreateFailed = "Failed to create project"
	msgUpdateFailed = "Failed to update project"
	msgDeleteFailed = "Failed to delete project"
)

// ListView is the project board: projects matching a status / owner filter.
type ListView struct {
	*state.List[Project, ListFilter]
	svc ServiceAPI
}

func NewListView(svc ServiceAPI, filter ListFilter, opts ...state.Option) *ListView {
	fetch := func(ctx context.Context, f ListFilter) ([]Project, error) {
		return svc.List(ctx, f)
	}
	return &ListView{
		List: state.NewList(fetch, filter, msgLoadFailed, opts...),
		svc:  svc,
	}
}

func (v *ListView) Create(ctx context.Context, dto CreateProjectDTO) state.Result[Project] {
	if err := dto.Validate(); err != nil {
		return state.Failed[Project](err.GetDetailedMessage())
	}
	return v.List.Create(ctx, func(ctx context.Context) (Project, error) {
		return state.Value(v.svc.Create(ctx, dto))
	}, msgCreateFailed)
}

func (v *ListView) Update(ctx context.Context, id string, dto UpdateProjectDTO) state.Result[Project] {
	if err := dto.Validate(); err != nil {
		return state.Failed[Project](err.GetDetailedMessage())
	}
	return v.List.Update(ctx, func(ctx context.Context) (Project, error) {
		return state.Value(v.svc.Update(ctx, id, dto))
	}, msgUpdateFailed)
}

func (v *ListView) Delete(ctx context.Context, id string) state.Result[string] {
	return v.List.Delete(ctx, id, func(ctx context.Context) error {
		return v.svc.Delete(ctx, id)
	}, msgDeleteFailed)
}
