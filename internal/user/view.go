package user

import (
	"context"

	"github.com/frahmantamala/project-console/internal/core/state"
)

const (
	msgLoadFailed       = "Failed to load users"
	msgCreateFailed     = "Failed to create user"
	msgUpdateFailed     = "Failed to update user"
	msgDeleteFailed     = "Failed to delete user"
	msgRoleUpdateFailed = "Failed to update user role"
)

// ListView is the user management list.
type ListView struct {
	*state.List[User, ListFilter]
	svc ServiceAPI
}

func NewListView(svc ServiceAPI, filter ListFilter, opts ...state.Option) *ListView {
	fetch := func(ctx context.Context, f ListFilter) ([]User, error) {
		return svc.List(ctx, f)
	}
	return &ListView{
		List: state.NewList(fetch, filter, msgLoadFailed, opts...),
		svc:  svc,
	}
}

func (v *ListView) Create(ctx context.Context, dto CreateUserDTO) state.Result[User] {
	if err := dto.Validate(); err != nil {
		return state.Failed[User](err.GetDetailedMessage())
	}
	return v.List.Create(ctx, func(ctx context.Context) (User, error) {
		return state.Value(v.svc.Create(ctx, dto))
	}, msgCreateFailed)
}

func (v *ListView) Update(ctx context.Context, id string, dto UpdateUserDTO) state.Result[User] {
	if err := dto.Validate(); err != nil {
		return state.Failed[User](err.GetDetailedMessage())
	}
	return v.List.Update(ctx, func(ctx context.Context) (User, error) {
		return state.Value(v.svc.Update(ctx, id, dto))
	}, msgUpdateFailed)
}

// Deactivate calls the delete endpoint. The account survives server side as
// inactive, so the returned user replaces the row instead of removing it.
func (v *ListView) Deactivate(ctx context.Context, id string) state.Result[User] {
	return v.List.Update(ctx, func(ctx context.Context) (User, error) {
		return state.Value(v.svc.Delete(ctx, id))
	}, msgDeleteFailed)
}

func (v *ListView) UpdateRole(ctx context.Context, id string, role Role) state.Result[User] {
	if !role.Valid() {
		return state.Failed[User]("role must be one of admin, member")
	}
	return v.List.Update(ctx, func(ctx context.Context) (User, error) {
		return state.Value(v.svc.UpdateRole(ctx, id, role))
	}, msgRoleUpdateFailed)
}
