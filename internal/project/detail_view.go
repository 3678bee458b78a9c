package project

import (
	"context"

	"github.com/frahmantamala/project-console/internal/core/state"
	"github.com/frahmantamala/project-console/internal/document"
	"github.com/frahmantamala/project-console/internal/user"
)

const (
	msgDetailLoadFailed = "Failed to load project details"
	msgNoProjectID      = "No project ID"
	msgAddMemberFailed  = "Failed to add member"
	msgRemoveMemberFail = "Failed to remove member"
	msgAddLinkFailed    = "Failed to add document link"
	msgUpdateLinkFailed = "Failed to update document link"
	msgDeleteLinkFailed = "Failed to delete document link"
)

// DetailView holds one project with its members and document links.
type DetailView struct {
	*state.Detail[Detail]
	svc  ServiceAPI
	docs document.ServiceAPI
}

func NewDetailView(svc ServiceAPI, docs document.ServiceAPI, projectID string, opts ...state.Option) *DetailView {
	fetch := func(ctx context.Context, id string) (*Detail, error) {
		return svc.Get(ctx, id)
	}
	return &DetailView{
		Detail: state.NewDetail(fetch, projectID, msgDetailLoadFailed, msgNoProjectID, opts...),
		svc:    svc,
		docs:   docs,
	}
}

// Update patches the project and shallow merges the answer, keeping the
// loaded members and links.
func (v *DetailView) Update(ctx context.Context, dto UpdateProjectDTO) state.Result[Project] {
	if err := dto.Validate(); err != nil {
		return state.Failed[Project](err.GetDetailedMessage())
	}
	return state.Mutate(ctx, v.Detail, func(ctx context.Context, id string) (Project, error) {
		return state.Value(v.svc.Update(ctx, id, dto))
	}, func(d Detail, p Project) Detail {
		d.Project = p
		return d
	}, msgUpdateFailed)
}

func (v *DetailView) AddMember(ctx context.Context, dto AddMemberDTO) state.Result[Member] {
	if err := dto.Validate(); err != nil {
		return state.Failed[Member](err.GetDetailedMessage())
	}
	return state.Mutate(ctx, v.Detail, func(ctx context.Context, id string) (Member, error) {
		return state.Value(v.svc.AddMember(ctx, id, dto))
	}, func(d Detail, m Member) Detail {
		d.Members = state.Append(d.Members, m)
		return d
	}, msgAddMemberFailed)
}

// RemoveMember drops the membership of userID, not a membership id.
func (v *DetailView) RemoveMember(ctx context.Context, userID string) state.Result[string] {
	return state.Mutate(ctx, v.Detail, func(ctx context.Context, id string) (string, error) {
		return userID, v.svc.RemoveMember(ctx, id, userID)
	}, func(d Detail, userID string) Detail {
		d.Members = state.RemoveWhere(d.Members, func(m Member) bool { return m.UserID == userID })
		return d
	}, msgRemoveMemberFail)
}

func (v *DetailView) AddDocumentLink(ctx context.Context, dto document.CreateLinkDTO) state.Result[document.Link] {
	if err := dto.Validate(); err != nil {
		return state.Failed[document.Link](err.GetDetailedMessage())
	}
	return state.Mutate(ctx, v.Detail, func(ctx context.Context, id string) (document.Link, error) {
		return state.Value(v.docs.Add(ctx, id, dto))
	}, func(d Detail, link document.Link) Detail {
		d.DocumentLinks = state.Append(d.DocumentLinks, link)
		return d
	}, msgAddLinkFailed)
}

// UpdateDocumentLink and DeleteDocumentLink address the link directly, so
// they work before any project is loaded.
func (v *DetailView) UpdateDocumentLink(ctx context.Context, linkID string, dto document.UpdateLinkDTO) state.Result[document.Link] {
	if err := dto.Validate(); err != nil {
		return state.Failed[document.Link](err.GetDetailedMessage())
	}
	return state.MutateNested(ctx, v.Detail, func(ctx context.Context) (document.Link, error) {
		return state.Value(v.docs.Update(ctx, linkID, dto))
	}, func(d Detail, link document.Link) Detail {
		d.DocumentLinks = state.MergeUpdated(d.DocumentLinks, link)
		return d
	}, msgUpdateLinkFailed)
}

func (v *DetailView) DeleteDocumentLink(ctx context.Context, linkID string) state.Result[string] {
	return state.MutateNested(ctx, v.Detail, func(ctx context.Context) (string, error) {
		return linkID, v.docs.Delete(ctx, linkID)
	}, func(d Detail, linkID string) Detail {
		d.DocumentLinks = state.MergeDeleted(d.DocumentLinks, linkID)
		return d
	}, msgDeleteLinkFailed)
}

// AvailableUsers narrows users to the active ones not yet on the project.
func (v *DetailView) AvailableUsers(users []user.User) []user.User {
	s := v.State()
	if s.Data == nil {
		return user.ActiveExcept(users, nil)
	}
	return user.ActiveExcept(users, s.Data.memberIDs())
}
