package routes

import (
	"habitflow/internal/controller"
	"habitflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// Health for load balancers and K8s probes
	router.GET("/health", controller.Health)
	router.GET("/ready", controller.Ready)

	// Public: no auth
	router.POST("/auth/register", controller.Register)
	router.POST("/auth/login", controller.Login)

	// Protected: JWT required
	api := router.Group("")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/habits", controller.GetHabits)
		api.GET("/habits/today", controller.GetToday)
		api.POST("/habits", controller.CreateHabit)
		api.PUT("/habits/:id", controller.UpdateHabit)
		api.DELETE("/habits/:id", controller.DeleteHabit)
		api.POST("/habits/:id/complete", controller.CompleteHabit)

		api.GET("/todos", controller.GetTodos)
		api.POST("/todos", controller.CreateTodo)
		api.PUT("/todos/:id", controller.UpdateTodo)
		api.DELETE("/todos/:id", controller.DeleteTodo)

		api.POST("/chat", controller.Chat)
	}

	return router
}
