package sandbox

import (
	"github.com/frahmantamala/project-console/internal/transport/middleware"
	"github.com/frahmantamala/project-console/internal/user"
	"github.com/go-chi/chi"
)

func (s *Server) routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(s.Logger))
	router.Use(s.injectFaults)
	router.Use(middleware.RecoveryMiddleware(s.Logger))

	authenticated := middleware.Authenticate(s.tokens, s.BaseHandler)
	adminOnly := middleware.RequireRole(s.BaseHandler, string(user.RoleAdmin))

	router.Route(APIPrefix, func(r chi.Router) {
		r.Get("/health", s.health)
		r.Get("/ping", s.ping)

		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/login", s.login)
			ar.Post("/register", s.register)
			ar.With(authenticated).Post("/logout", s.logout)
			ar.With(authenticated).Get("/me", s.me)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authenticated)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/", s.listUsers)
				ur.Get("/{userID}", s.getUser)
				ur.Group(func(admin chi.Router) {
					admin.Use(adminOnly)
					admin.Post("/", s.createUser)
					admin.Patch("/{userID}", s.updateUser)
					admin.Delete("/{userID}", s.deleteUser)
					admin.Patch("/{userID}/role", s.updateUserRole)
				})
			})

			pr.Route("/projects", func(prr chi.Router) {
				prr.Get("/", s.listProjects)
				prr.Post("/", s.createProject)
				prr.Get("/overdue", s.listOverdueProjects)
				prr.Patch("/documents/{linkID}", s.updateDocumentLink)
				prr.Delete("/documents/{linkID}", s.deleteDocumentLink)
				prr.Route("/{projectID}", func(one chi.Router) {
					one.Get("/", s.getProject)
					one.Patch("/", s.updateProject)
					one.Delete("/", s.deleteProject)
					one.Get("/members", s.listMembers)
					one.Post("/members", s.addMember)
					one.Delete("/members/{userID}", s.removeMember)
					one.Get("/documents", s.listDocumentLinks)
					one.Post("/documents", s.addDocumentLink)
					one.Get("/expenses", s.listExpenses)
					one.Post("/expenses", s.createExpense)
					one.Get("/budget", s.budgetSummary)
				})
			})

			pr.Route("/tasks", func(tr chi.Router) {
				tr.Get("/", s.listTasks)
				tr.Post("/", s.createTask)
				tr.Get("/my-tasks", s.myTasks)
				tr.Get("/my-tasks/summary", s.myTasksSummary)
				tr.Get("/projects/{projectID}/stats", s.projectTaskStats)
				tr.Get("/{taskID}", s.getTask)
				tr.Patch("/{taskID}", s.updateTask)
				tr.Delete("/{taskID}", s.deleteTask)
			})

			pr.Route("/expenses", func(er chi.Router) {
				er.Get("/{expenseID}", s.getExpense)
				er.Patch("/{expenseID}", s.updateExpense)
				er.Delete("/{expenseID}", s.deleteExpense)
			})

			pr.With(adminOnly).Get("/audit-logs", s.listAuditLogs)
			pr.Get("/dashboard", s.dashboardStats)
			pr.Get("/dashboard/stats", s.dashboardStats)
		})
	})

	return router
}
