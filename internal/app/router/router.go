package router

import (
	"github.com/gin-gonic/gin"

	accountshandler "todo_backend/internal/feature/accounts/transport/handler"
	taskshandler "todo_backend/internal/feature/tasks/transport/handler"
	platformhandler "todo_backend/internal/platform/http/handler"
)

// jsonContentType sets the default response content type before any
// handler runs. gin's JSON renderer keeps an already-set header, so every
// response goes out with this exact value.
func jsonContentType() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", `application/json; charset="utf-8"`)
		c.Next()
	}
}

// NewRouter wires the route table. authRequired guards every per-profile
// resource; registration, login, logout and the info view stay open.
func NewRouter(accounts *accountshandler.AccountsHandler, tasks *taskshandler.TasksHandler,
	authRequired gin.HandlerFunc) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)

	v1 := r.Group("/api/v1", jsonContentType())

	// No authentication required
	v1.GET("", platformhandler.Info)
	v1.POST("/accounts", accounts.Register)
	v1.POST("/accounts/login", accounts.Login)
	v1.GET("/accounts/logout", accounts.Logout)

	// Routes requiring a valid auth_token cookie
	auth := v1.Group("/accounts", authRequired)
	{
		auth.GET("/:username", accounts.GetProfile)
		auth.PUT("/:username", accounts.UpdateProfile)
		auth.DELETE("/:username", accounts.DeleteProfile)
		auth.GET("/:username/tasks", tasks.List)
		auth.POST("/:username/tasks", tasks.Create)
		auth.GET("/:username/tasks/:id", tasks.Get)
		auth.PUT("/:username/tasks/:id", tasks.Update)
		auth.DELETE("/:username/tasks/:id", tasks.Delete)
	}

	return r
}
