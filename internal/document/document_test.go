package document_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/frahmantamala/project-console/internal/document"
	"github.com/frahmantamala/project-console/internal/project"
	"github.com/frahmantamala/project-console/internal/sandbox"
	"github.com/frahmantamala/project-console/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDocument(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Document Suite")
}

var _ = Describe("Service", func() {
	var (
		ctx       context.Context
		harness   *sandbox.Harness
		svc       *document.Service
		projectID string
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		harness, err = sandbox.NewHarness(logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(harness.Close)
		Expect(harness.Login(ctx, sandbox.MemberEmail, sandbox.MemberPassword)).To(Succeed())

		svc = document.NewService(harness.Client, logger.Discard())
		p, err := project.NewService(harness.Client, logger.Discard()).Create(ctx, project.CreateProjectDTO{Name: "Docs"})
		Expect(err).NotTo(HaveOccurred())
		projectID = p.ID
	})

	It("adds, lists, edits and removes links", func() {
		// Given
		link, err := svc.Add(ctx, projectID, document.CreateLinkDTO{Title: "Brief", URL: "https://acme.larksuite.com/docx/1"})
		Expect(err).NotTo(HaveOccurred())
		Expect(link.ProjectID).To(Equal(projectID))

		// When
		title := "Final brief"
		updated, err := svc.Update(ctx, link.ID, document.UpdateLinkDTO{Title: &title})
		Expect(err).NotTo(HaveOccurred())
		links, err := svc.List(ctx, projectID)
		Expect(err).NotTo(HaveOccurred())

		// Then
		Expect(updated.Title).To(Equal("Final brief"))
		Expect(links).To(HaveLen(1))
		Expect(svc.Delete(ctx, link.ID)).To(Succeed())
		Expect(harness.CallsTo(http.MethodDelete, "/projects/documents/"+link.ID)).To(HaveLen(1))
		links, err = svc.List(ctx, projectID)
		Expect(err).NotTo(HaveOccurred())
		Expect(links).To(BeEmpty())
	})

	It("rejects links that are not URLs", func() {
		// When
		err := document.CreateLinkDTO{Title: "Brief", URL: "not a url"}.Validate()

		// Then
		Expect(err).NotTo(BeNil())
	})
})

var _ = DescribeTable("IsFeishu",
	func(raw string, expected bool) {
		Expect(document.Link{URL: raw}.IsFeishu()).To(Equal(expected))
	},
	Entry("feishu subdomain", "https://acme.feishu.cn/docx/abc", true),
	Entry("lark suite", "https://acme.larksuite.com/wiki/abc", true),
	Entry("bare feishu", "https://feishu.cn/x", true),
	Entry("lookalike", "https://notfeishu.cn/x", false),
	Entry("other host", "https://docs.google.com/d/1", false),
	Entry("garbage", "::", false),
)
