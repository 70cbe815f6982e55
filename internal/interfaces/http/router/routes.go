// Package router 提供 HTTP 路由配置
package router

import (
	"task-prompt-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
)

// registerAPIRoutes 注册需要认证的路由
func registerAPIRoutes(api *gin.RouterGroup, h Handlers) {
	// 用户
	users := api.Group("/users")
	{
		users.GET("/me", h.User.Me)

		admin := users.Group("", middleware.RequireAdmin())
		admin.GET("", h.User.ListUsers)
		admin.GET("/:id", h.User.GetUser)
		admin.DELETE("/:id", h.User.DeleteUser)
		admin.POST("/:id/credits", h.User.GrantCredits)
	}

	// 任务
	tasks := api.Group("/tasks")
	{
		tasks.GET("", h.Task.ListTasks)
		tasks.POST("", h.Task.CreateTask)
		tasks.GET("/:id", h.Task.GetTask)
		tasks.PUT("/:id", h.Task.UpdateTask)
		tasks.DELETE("/:id", h.Task.DeleteTask)
		tasks.GET("/:id/prompts", h.Task.ListTaskPrompts)
	}

	// 提示词
	prompts := api.Group("/prompts")
	{
		prompts.GET("", h.Prompt.ListPrompts)
		prompts.POST("/:prompt_id/apply/:task_id", h.Prompt.ApplyPrompt)
	}

	// 积分
	credits := api.Group("/credits")
	{
		credits.GET("", h.Credit.ListCredits)
		credits.GET("/balance", h.Credit.Balance)
	}
}
