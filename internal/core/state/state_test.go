package state_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/state"
	"github.com/frahmantamala/project-console/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestState(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "State Suite")
}

type item struct {
	ID   string
	Name string
}

func (i item) GetID() string { return i.ID }

type filter struct {
	Status *string
}

func strPtr(s string) *string { return &s }

// fakeSource records list calls and serves canned answers.
type fakeSource struct {
	mu      sync.Mutex
	calls   []filter
	results map[string][]item
	err     error
}

func (f *fakeSource) list(_ context.Context, flt filter) ([]item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, flt)
	if f.err != nil {
		return nil, f.err
	}
	key := ""
	if flt.Status != nil {
		key = *flt.Status
	}
	return f.results[key], nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var _ = Describe("Merge functions", func() {
	var items []item

	BeforeEach(func() {
		items = []item{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	})

	Describe("MergeCreated", func() {
		It("should prepend a new element without touching the input", func() {
			out := state.MergeCreated(items, item{ID: "c", Name: "C"})
			Expect(out).To(Equal([]item{{ID: "c", Name: "C"}, {ID: "a", Name: "A"}, {ID: "b", Name: "B"}}))
			Expect(items).To(HaveLen(2))
		})

		It("should replace in place when the id already exists", func() {
			out := state.MergeCreated(items, item{ID: "b", Name: "B2"})
			Expect(out).To(Equal([]item{{ID: "a", Name: "A"}, {ID: "b", Name: "B2"}}))
			Expect(items[1].Name).To(Equal("B"))
		})
	})

	Describe("MergeUpdated", func() {
		It("should replace only the matching element", func() {
			out := state.MergeUpdated(items, item{ID: "a", Name: "A2"})
			Expect(out).To(Equal([]item{{ID: "a", Name: "A2"}, {ID: "b", Name: "B"}}))
			Expect(items[0].Name).To(Equal("A"))
		})

		It("should leave the collection alone for unknown ids", func() {
			Expect(state.MergeUpdated(items, item{ID: "z"})).To(Equal(items))
		})
	})

	Describe("MergeDeleted", func() {
		It("should remove exactly the matching element", func() {
			Expect(state.MergeDeleted(items, "a")).To(Equal([]item{{ID: "b", Name: "B"}}))
			Expect(items).To(HaveLen(2))
		})
	})
})

var _ = Describe("List", func() {
	var (
		src  *fakeSource
		list *state.List[item, filter]
		ctx  context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		src = &fakeSource{results: map[string][]item{
			"":          {{ID: "a"}, {ID: "b"}},
			"todo":      {{ID: "t1"}},
			"completed": {{ID: "c1"}, {ID: "c2"}},
		}}
		list = state.NewList(src.list, filter{}, "Failed to load items", state.WithLogger(logger.Discard()))
	})

	Describe("Open", func() {
		It("should fetch on open by default", func() {
			s := list.Open(ctx)
			Expect(src.callCount()).To(Equal(1))
			Expect(s.Loading).To(BeFalse())
			Expect(s.Data).To(HaveLen(2))
		})

		It("should not fetch when auto fetch is off", func() {
			list = state.NewList(src.list, filter{}, "Failed to load items", state.WithAutoFetch(false), state.WithLogger(logger.Discard()))
			s := list.Open(ctx)
			Expect(src.callCount()).To(BeZero())
			Expect(s.Data).To(BeEmpty())
		})
	})

	Describe("Fetch", func() {
		It("should surface the server message on failure", func() {
			src.err = internal.NewFromStatus(http.StatusForbidden, "Not a member")
			s := list.Fetch(ctx)
			Expect(s.Error).To(Equal("Not a member"))
			Expect(s.Loading).To(BeFalse())
		})

		It("should fall back to the default message", func() {
			src.err = errors.New("dial tcp: connection refused")
			s := list.Fetch(ctx)
			Expect(s.Error).To(Equal("Failed to load items"))
		})

		It("should clear a previous error on the next fetch", func() {
			src.err = errors.New("boom")
			list.Fetch(ctx)
			src.err = nil
			s := list.Fetch(ctx)
			Expect(s.Error).To(BeEmpty())
			Expect(s.Data).To(HaveLen(2))
		})

		It("should notify listeners of the loading transition", func() {
			var seen []bool
			list = state.NewList(src.list, filter{}, "x", state.WithLogger(logger.Discard()), state.WithOnChange(func() {
				seen = append(seen, list.State().Loading)
			}))
			list.Fetch(ctx)
			Expect(seen).To(Equal([]bool{true, false}))
		})
	})

	Describe("SetFilter", func() {
		It("should refetch exactly once with the new filter and replace the data", func() {
			// Given
			list = state.NewList(src.list, filter{Status: strPtr("todo")}, "x", state.WithLogger(logger.Discard()))
			list.Open(ctx)
			Expect(list.State().Data).To(Equal([]item{{ID: "t1"}}))

			// When
			changed := list.SetFilter(ctx, filter{Status: strPtr("completed")})

			// Then
			Expect(changed).To(BeTrue())
			Expect(src.callCount()).To(Equal(2))
			Expect(*src.calls[1].Status).To(Equal("completed"))
			Expect(list.State().Data).To(Equal([]item{{ID: "c1"}, {ID: "c2"}}))
		})

		It("should ignore an equal filter", func() {
			list = state.NewList(src.list, filter{Status: strPtr("todo")}, "x", state.WithLogger(logger.Discard()))
			list.Open(ctx)
			Expect(list.SetFilter(ctx, filter{Status: strPtr("todo")})).To(BeFalse())
			Expect(src.callCount()).To(Equal(1))
		})
	})

	Describe("mutations", func() {
		BeforeEach(func() {
			list.Open(ctx)
		})

		It("should prepend a created entity exactly once", func() {
			res := list.Create(ctx, func(context.Context) (item, error) {
				return item{ID: "p1", Name: "Pilot"}, nil
			}, "Failed to create")

			Expect(res.Success).To(BeTrue())
			Expect(res.Data.ID).To(Equal("p1"))
			Expect(list.State().Data).To(Equal([]item{{ID: "p1", Name: "Pilot"}, {ID: "a"}, {ID: "b"}}))
		})

		It("should leave state untouched when create fails", func() {
			before := list.State()
			res := list.Create(ctx, func(context.Context) (item, error) {
				return item{}, internal.NewFromStatus(http.StatusBadRequest, "name taken")
			}, "Failed to create")

			Expect(res).To(Equal(state.Result[item]{Error: "name taken"}))
			Expect(list.State()).To(Equal(before))
		})

		It("should replace an updated entity in place", func() {
			res := list.Update(ctx, func(context.Context) (item, error) {
				return item{ID: "b", Name: "renamed"}, nil
			}, "Failed to update")
			Expect(res.Success).To(BeTrue())
			Expect(list.State().Data).To(Equal([]item{{ID: "a"}, {ID: "b", Name: "renamed"}}))
		})

		It("should remove a deleted entity only on success", func() {
			failed := list.Delete(ctx, "a", func(context.Context) error {
				return errors.New("offline")
			}, "Failed to delete")
			Expect(failed.Success).To(BeFalse())
			Expect(failed.Error).To(Equal("Failed to delete"))
			Expect(list.State().Data).To(HaveLen(2))

			ok := list.Delete(ctx, "a", func(context.Context) error { return nil }, "Failed to delete")
			Expect(ok.Success).To(BeTrue())
			Expect(ok.Data).To(Equal("a"))
			Expect(list.State().Data).To(Equal([]item{{ID: "b"}}))
		})
	})

	Describe("Close", func() {
		It("should discard a fetch that resolves after close", func() {
			// Given
			release := make(chan struct{})
			started := make(chan struct{})
			slow := func(ctx context.Context, _ filter) ([]item, error) {
				close(started)
				<-release
				return []item{{ID: "late"}}, nil
			}
			list = state.NewList(slow, filter{}, "x", state.WithLogger(logger.Discard()))

			done := make(chan struct{})
			go func() {
				defer close(done)
				list.Fetch(ctx)
			}()
			<-started

			// When
			list.Close()
			close(release)
			<-done

			// Then
			Expect(list.Closed()).To(BeTrue())
			Expect(list.State().Data).To(BeEmpty())
		})

		It("should cancel the request context of in-flight calls", func() {
			started := make(chan struct{})
			var callErr error
			blocking := func(ctx context.Context, _ filter) ([]item, error) {
				close(started)
				<-ctx.Done()
				callErr = ctx.Err()
				return nil, ctx.Err()
			}
			list = state.NewList(blocking, filter{}, "x", state.WithLogger(logger.Discard()))

			done := make(chan struct{})
			go func() {
				defer close(done)
				list.Fetch(ctx)
			}()
			<-started
			list.Close()
			Eventually(done).Should(BeClosed())
			Expect(callErr).To(MatchError(context.Canceled))
		})

		It("should refuse mutations after close", func() {
			list.Close()
			called := false
			res := list.Create(ctx, func(context.Context) (item, error) {
				called = true
				return item{ID: "x"}, nil
			}, "x")
			Expect(called).To(BeFalse())
			Expect(res.Error).To(Equal(state.ClosedMessage))
		})
	})
})

type aggregate struct {
	ID       string
	Name     string
	Children []item
}

var _ = Describe("Detail", func() {
	var (
		ctx    context.Context
		fetchN int
		detail *state.Detail[aggregate]
	)

	fetch := func(_ context.Context, id string) (*aggregate, error) {
		fetchN++
		if id == "missing" {
			return nil, internal.NewFromStatus(http.StatusNotFound, "")
		}
		return &aggregate{ID: id, Name: "agg " + id, Children: []item{{ID: "c1"}}}, nil
	}

	BeforeEach(func() {
		ctx = context.Background()
		fetchN = 0
		detail = state.NewDetail(fetch, "p1", "Failed to load", "No ID", state.WithLogger(logger.Discard()))
	})

	It("should load the aggregate on open", func() {
		s := detail.Open(ctx)
		Expect(s.Data).NotTo(BeNil())
		Expect(s.Data.Name).To(Equal("agg p1"))
	})

	It("should use the fallback message for a bare 404", func() {
		detail.SetID(ctx, "missing")
		Expect(detail.State().Error).To(Equal("Failed to load"))
	})

	It("should not fetch without an id", func() {
		detail = state.NewDetail(fetch, "", "Failed to load", "No ID", state.WithLogger(logger.Discard()))
		detail.Open(ctx)
		Expect(fetchN).To(BeZero())
	})

	It("should reject mutations without an id", func() {
		detail = state.NewDetail(fetch, "", "Failed to load", "No ID", state.WithLogger(logger.Discard()))
		res := state.Mutate(ctx, detail, func(context.Context, string) (item, error) {
			return item{ID: "x"}, nil
		}, func(a aggregate, _ item) aggregate { return a }, "fail")
		Expect(res.Error).To(Equal("No ID"))
	})

	It("should fold sub-resource mutations into the aggregate", func() {
		detail.Open(ctx)
		before := detail.State()

		res := state.Mutate(ctx, detail, func(_ context.Context, id string) (item, error) {
			Expect(id).To(Equal("p1"))
			return item{ID: "c2"}, nil
		}, func(a aggregate, added item) aggregate {
			a.Children = state.Append(a.Children, added)
			return a
		}, "fail")

		Expect(res.Success).To(BeTrue())
		Expect(detail.State().Data.Children).To(Equal([]item{{ID: "c1"}, {ID: "c2"}}))
		Expect(before.Data.Children).To(HaveLen(1))
	})

	It("should leave the aggregate untouched on failure", func() {
		detail.Open(ctx)
		res := state.Mutate(ctx, detail, func(context.Context, string) (item, error) {
			return item{}, internal.NewFromStatus(http.StatusConflict, "already a member")
		}, func(a aggregate, added item) aggregate {
			a.Children = state.Append(a.Children, added)
			return a
		}, "fail")
		Expect(res.Error).To(Equal("already a member"))
		Expect(detail.State().Data.Children).To(HaveLen(1))
	})

	It("should run nested mutations without an id", func() {
		detail = state.NewDetail(fetch, "", "Failed to load", "No ID", state.WithLogger(logger.Discard()))
		called := false
		res := state.MutateNested(ctx, detail, func(context.Context) (string, error) {
			called = true
			return "c1", nil
		}, func(a aggregate, id string) aggregate {
			a.Children = state.MergeDeleted(a.Children, id)
			return a
		}, "fail")
		Expect(called).To(BeTrue())
		Expect(res.Success).To(BeTrue())
		Expect(detail.State().Data).To(BeNil())
	})

	It("should fold nested mutations into a loaded aggregate", func() {
		detail.Open(ctx)
		res := state.MutateNested(ctx, detail, func(context.Context) (string, error) {
			return "c1", nil
		}, func(a aggregate, id string) aggregate {
			a.Children = state.MergeDeleted(a.Children, id)
			return a
		}, "fail")
		Expect(res.Success).To(BeTrue())
		Expect(detail.State().Data.Children).To(BeEmpty())
	})

	It("should refetch when the id changes", func() {
		detail.Open(ctx)
		Expect(detail.SetID(ctx, "p1")).To(BeFalse())
		Expect(detail.SetID(ctx, "p2")).To(BeTrue())
		Expect(fetchN).To(Equal(2))
		Expect(detail.State().Data.ID).To(Equal("p2"))
	})
})
