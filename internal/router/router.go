package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/studybuddy/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Stats  *apiHandler.StatsHandler
	Reward *apiHandler.RewardHandler
	Group  *apiHandler.GroupHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/signup", handlers.Auth.Signup)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.Logout))
	r.GET("/api/v1/auth/me", authMiddleware(handlers.Auth.Me))

	// Protected routes
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/categories", authMiddleware(handlers.Task.GetCategories))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))
	r.PATCH("/api/v1/tasks/{id}/complete", authMiddleware(handlers.Task.CompleteTask))

	r.GET("/api/v1/stats", authMiddleware(handlers.Stats.GetStats))

	r.GET("/api/v1/rewards", authMiddleware(handlers.Reward.GetRewards))
	r.GET("/api/v1/rewards/redeemed", authMiddleware(handlers.Reward.GetRedemptions))
	r.POST("/api/v1/rewards/{id}/redeem", authMiddleware(handlers.Reward.RedeemReward))

	r.GET("/api/v1/groups", authMiddleware(handlers.Group.GetGroups))
	r.POST("/api/v1/groups", authMiddleware(handlers.Group.CreateGroup))
	r.GET("/api/v1/groups/{id}", authMiddleware(handlers.Group.GetGroup))
	r.POST("/api/v1/groups/{id}/join", authMiddleware(handlers.Group.JoinGroup))
	r.DELETE("/api/v1/groups/{id}/leave", authMiddleware(handlers.Group.LeaveGroup))
	r.GET("/api/v1/groups/{id}/members", authMiddleware(handlers.Group.GetMembers))

	return r
}
