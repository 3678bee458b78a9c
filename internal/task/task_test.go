package task_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/frahmantamala/project-console/internal/core/state"
	"github.com/frahmantamala/project-console/internal/project"
	"github.com/frahmantamala/project-console/internal/sandbox"
	"github.com/frahmantamala/project-console/internal/task"
	"github.com/frahmantamala/project-console/internal/user"
	"github.com/frahmantamala/project-console/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTask(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Task Suite")
}

var _ = Describe("Task", func() {
	var (
		ctx     context.Context
		harness *sandbox.Harness
		svc     *task.Service
		pilot   *project.Project
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		harness, err = sandbox.NewHarness(logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(harness.Close)
		Expect(harness.Login(ctx, sandbox.MemberEmail, sandbox.MemberPassword)).To(Succeed())

		svc = task.NewService(harness.Client, logger.Discard())
		pilot, err = project.NewService(harness.Client, logger.Discard()).Create(ctx, project.CreateProjectDTO{Name: "Pilot"})
		Expect(err).NotTo(HaveOccurred())
		for _, name := range []string{"One", "Two"} {
			_, err := svc.Create(ctx, task.CreateTaskDTO{Name: name, ProjectID: pilot.ID})
			Expect(err).NotTo(HaveOccurred())
		}
		done := task.StatusCompleted
		_, err = svc.Create(ctx, task.CreateTaskDTO{Name: "Shipped", ProjectID: pilot.ID, Status: &done})
		Expect(err).NotTo(HaveOccurred())
		harness.ResetCalls()
	})

	Describe("ListView", func() {
		var view *task.ListView

		BeforeEach(func() {
			todo := task.StatusTodo
			view = task.NewListView(svc, task.ListFilter{ProjectID: &pilot.ID, Status: &todo}, state.WithLogger(logger.Discard()))
			DeferCleanup(view.Close)
		})

		It("replaces the data when the status filter changes", func() {
			// Given
			Expect(view.Open(ctx).Data).To(HaveLen(2))

			// When
			completed := task.StatusCompleted
			view.SetFilter(ctx, task.ListFilter{ProjectID: &pilot.ID, Status: &completed})

			// Then
			calls := harness.CallsTo(http.MethodGet, "/tasks")
			Expect(calls).To(HaveLen(2))
			Expect(calls[1].Query.Get("status")).To(Equal("completed"))
			s := view.State()
			Expect(s.Data).To(HaveLen(1))
			Expect(s.Data[0].Name).To(Equal("Shipped"))
		})

		It("updates a row in place on a status change", func() {
			// Given
			opened := view.Open(ctx)
			id := opened.Data[0].ID

			// When
			result := view.SetStatus(ctx, id, task.StatusInProgress)

			// Then
			Expect(result.Success).To(BeTrue())
			s := view.State()
			Expect(s.Data).To(HaveLen(2))
			Expect(s.Data[0].Status).To(Equal(task.StatusInProgress))
		})

		It("rejects an unknown status before calling the server", func() {
			// Given
			opened := view.Open(ctx)
			harness.ResetCalls()

			// When
			result := view.SetStatus(ctx, opened.Data[0].ID, task.Status("blocked"))

			// Then
			Expect(result.Success).To(BeFalse())
			Expect(harness.Calls()).To(BeEmpty())
		})

		It("creates at the head and deletes only on success", func() {
			// Given
			view.Open(ctx)

			// When
			created := view.Create(ctx, task.CreateTaskDTO{Name: "Three", ProjectID: pilot.ID})

			// Then
			Expect(created.Success).To(BeTrue())
			Expect(view.State().Data[0].Name).To(Equal("Three"))

			harness.FailNext(http.MethodDelete, "/tasks/"+created.Data.ID, sandbox.Fault{Status: http.StatusNotFound, Detail: "Task not found"})
			failed := view.Delete(ctx, created.Data.ID)
			Expect(failed.Error).To(Equal("Task not found"))
			Expect(view.State().Data).To(HaveLen(3))

			Expect(view.Delete(ctx, created.Data.ID).Success).To(BeTrue())
			Expect(view.State().Data).To(HaveLen(2))
		})
	})

	Describe("MyTasksView", func() {
		It("lists tasks assigned to the caller", func() {
			// Given
			me, err := user.NewService(harness.Client, logger.Discard()).List(ctx, user.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			var memberID string
			for _, u := range me {
				if u.Email == sandbox.MemberEmail {
					memberID = u.ID
				}
			}
			_, err = svc.Create(ctx, task.CreateTaskDTO{Name: "Mine", ProjectID: pilot.ID, AssigneeID: &memberID})
			Expect(err).NotTo(HaveOccurred())

			view := task.NewMyTasksView(svc, task.MyTasksFilter{}, state.WithLogger(logger.Discard()))
			DeferCleanup(view.Close)

			// When
			s := view.Open(ctx)

			// Then
			Expect(s.Error).To(BeEmpty())
			names := []string{}
			for _, t := range s.Data {
				names = append(names, t.Name)
			}
			Expect(names).To(ContainElement("Mine"))
			Expect(names).NotTo(ContainElement("One"))
		})
	})

	Describe("Status", func() {
		It("treats completed and cancelled as done", func() {
			Expect(task.StatusCompleted.Done()).To(BeTrue())
			Expect(task.StatusCancelled.Done()).To(BeTrue())
			Expect(task.StatusInReview.Done()).To(BeFalse())
			Expect(task.Status("blocked").Valid()).To(BeFalse())
			Expect(task.PriorityUrgent.Valid()).To(BeTrue())
		})

		It("computes the completion rate", func() {
			Expect(task.Stats{}.CompletionRate()).To(Equal(0.0))
			Expect(task.Stats{Total: 4, Completed: 1}.CompletionRate()).To(Equal(25.0))
		})
	})
})
