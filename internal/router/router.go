package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskforge/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	User    *apiHandler.UserHandler
	Project *apiHandler.ProjectHandler
	Task    *apiHandler.TaskHandler
	Report  *apiHandler.ReportHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Public routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/users", handlers.User.Register)

	// Protected routes
	r.GET("/api/v1/users/{id}", authMiddleware(handlers.User.GetUser))
	r.PUT("/api/v1/users/{id}", authMiddleware(handlers.User.UpdateUser))
	r.DELETE("/api/v1/users/{id}", authMiddleware(handlers.User.DeleteUser))

	r.GET("/api/v1/projects", authMiddleware(handlers.Project.ListProjects))
	r.POST("/api/v1/projects", authMiddleware(handlers.Project.CreateProject))
	r.GET("/api/v1/projects/{id}", authMiddleware(handlers.Project.GetProject))
	r.PUT("/api/v1/projects/{id}", authMiddleware(handlers.Project.UpdateProject))
	r.DELETE("/api/v1/projects/{id}", authMiddleware(handlers.Project.DeleteProject))

	r.GET("/api/v1/projects/{id}/tasks", authMiddleware(handlers.Task.ListTasks))
	r.POST("/api/v1/projects/{id}/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.PATCH("/api/v1/tasks/{id}", authMiddleware(handlers.Task.PatchTask))
	r.PUT("/api/v1/tasks/{id}/status", authMiddleware(handlers.Task.UpdateStatus))
	r.POST("/api/v1/tasks/{id}/comments", authMiddleware(handlers.Task.AddComment))
	r.GET("/api/v1/tasks/{id}/history", authMiddleware(handlers.Task.GetHistory))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	r.GET("/api/v1/reports/performance", authMiddleware(handlers.Report.GetPerformanceReport))

	return r
}
