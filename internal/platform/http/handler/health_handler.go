// Package handler provides the HTTP handlers for platform-level endpoints.
package handler

import "github.com/gin-gonic/gin"

// Health handles the /healthz endpoint for service health checks.
// It responds appropriately per HTTP method and prevents caching.
func Health(c *gin.Context) {
	// Explicitly prevent caching
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}

// Info handles GET /api/v1 and lists every route the API serves.
func Info(c *gin.Context) {
	c.JSON(200, gin.H{
		"info":                  "GET /api/v1",
		"register":              "POST /api/v1/accounts",
		"single profile detail": "GET /api/v1/accounts/<username>",
		"edit profile":          "PUT /api/v1/accounts/<username>",
		"delete profile":        "DELETE /api/v1/accounts/<username>",
		"login":                 "POST /api/v1/accounts/login",
		"logout":                "GET /api/v1/accounts/logout",
		"user's tasks":          "GET /api/v1/accounts/<username>/tasks",
		"create task":           "POST /api/v1/accounts/<username>/tasks",
		"task detail":           "GET /api/v1/accounts/<username>/tasks/<id>",
		"task update":           "PUT /api/v1/accounts/<username>/tasks/<id>",
		"delete task":           "DELETE /api/v1/accounts/<username>/tasks/<id>",
	})
}
