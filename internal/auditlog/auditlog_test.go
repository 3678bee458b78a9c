package auditlog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/frahmantamala/project-console/internal/auditlog"
	"github.com/frahmantamala/project-console/internal/core/state"
	"github.com/frahmantamala/project-console/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAuditLog(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Log Suite")
}

// pagedService serves total synthetic records honouring skip and limit.
type pagedService struct {
	total  int
	calls  []auditlog.Filter
	onList func()
}

func (p *pagedService) List(_ context.Context, f auditlog.Filter) (*auditlog.ListResponse, error) {
	p.calls = append(p.calls, f)
	if p.onList != nil {
		p.onList()
	}
	items := []auditlog.AuditLog{}
	for i := f.Skip; i < f.Skip+f.Limit && i < p.total; i++ {
		items = append(items, auditlog.AuditLog{ID: fmt.Sprintf("log-%d", i)})
	}
	return &auditlog.ListResponse{Total: p.total, Items: items}, nil
}

var _ = Describe("ListView", func() {
	var (
		ctx  context.Context
		svc  *pagedService
		view *auditlog.ListView
	)

	BeforeEach(func() {
		ctx = context.Background()
		svc = &pagedService{total: 120}
		view = auditlog.NewListView(svc, auditlog.Filter{}, state.WithLogger(logger.Discard()))
		DeferCleanup(view.Close)
	})

	It("defaults to pages of fifty", func() {
		// When
		s := view.Open(ctx)

		// Then
		Expect(s.Data).To(HaveLen(auditlog.DefaultLimit))
		Expect(view.Total()).To(Equal(120))
		Expect(view.Pages()).To(Equal(3))
		Expect(view.Page()).To(Equal(1))
		Expect(view.HasPrev()).To(BeFalse())
		Expect(view.HasNext()).To(BeTrue())
	})

	It("keeps the total of the shown page when closed mid fetch", func() {
		// Given
		view.Open(ctx)
		svc.total = 7
		svc.onList = view.Close

		// When
		view.NextPage(ctx)

		// Then
		Expect(svc.calls).To(HaveLen(2))
		Expect(view.Total()).To(Equal(120))
		Expect(view.State().Data).To(HaveLen(auditlog.DefaultLimit))
	})

	It("walks forward and back through the pages", func() {
		// Given
		view.Open(ctx)

		// When
		Expect(view.NextPage(ctx)).To(BeTrue())
		Expect(view.NextPage(ctx)).To(BeTrue())

		// Then
		Expect(view.Page()).To(Equal(3))
		Expect(view.State().Data).To(HaveLen(20))
		Expect(view.HasNext()).To(BeFalse())
		Expect(view.NextPage(ctx)).To(BeFalse())

		Expect(view.PrevPage(ctx)).To(BeTrue())
		Expect(view.Page()).To(Equal(2))
		Expect(view.State().Data[0].ID).To(Equal("log-50"))
	})

	It("starts over when the criteria change", func() {
		// Given
		view.Open(ctx)
		view.NextPage(ctx)
		action := "delete"

		// When
		changed := view.SetFilter(ctx, auditlog.Filter{ActionType: &action})

		// Then
		Expect(changed).To(BeTrue())
		last := svc.calls[len(svc.calls)-1]
		Expect(last.Skip).To(Equal(0))
		Expect(last.Limit).To(Equal(auditlog.DefaultLimit))
		Expect(*last.ActionType).To(Equal("delete"))
	})

	It("ignores an identical filter", func() {
		// Given
		view.Open(ctx)

		// When
		changed := view.SetFilter(ctx, view.Filter())

		// Then
		Expect(changed).To(BeFalse())
		Expect(svc.calls).To(HaveLen(1))
	})
})

var _ = Describe("Filter", func() {
	It("refuses an end date before the start date", func() {
		start, end := "2024-02-01", "2024-01-01"
		err := auditlog.Filter{StartDate: &start, EndDate: &end}.Validate()
		Expect(err).NotTo(BeNil())
	})

	It("encodes only the criteria that are set", func() {
		resource := "project"
		q := auditlog.Filter{ResourceType: &resource}.Query()
		Expect(q.Get("resource_type")).To(Equal("project"))
		Expect(q.Has("user_id")).To(BeFalse())
	})
})
