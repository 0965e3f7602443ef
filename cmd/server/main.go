package main

import (
	"log"
	"os"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"

	"todo_backend/internal/app/router"
	accountsadapters "todo_backend/internal/feature/accounts/adapters"
	accountshandler "todo_backend/internal/feature/accounts/transport/handler"
	accountsusecase "todo_backend/internal/feature/accounts/usecase"
	tasksadapters "todo_backend/internal/feature/tasks/adapters"
	taskshandler "todo_backend/internal/feature/tasks/transport/handler"
	tasksusecase "todo_backend/internal/feature/tasks/usecase"
	"todo_backend/internal/platform/authcookie"
	"todo_backend/internal/platform/db"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// db
	gdb, err := db.Open(db.LoadConfigFromEnv())
	if err != nil {
		log.Fatal(err)
	}

	// Cookie signing secret
	secret := []byte(os.Getenv("COOKIE_SECRET"))
	if len(secret) == 0 {
		log.Println("[WARN] COOKIE_SECRET is not set. Using a random key; cookies will not survive a restart.")
		secret = securecookie.GenerateRandomKey(64)
	}
	cookies := authcookie.NewCodec(secret)

	// Repository
	profileRepo := accountsadapters.NewProfileRepository(gdb)
	taskRepo := tasksadapters.NewTaskRepository(gdb)

	// Usecase
	accountsUC := accountsusecase.NewAccountsUsecase(profileRepo)
	tasksUC := tasksusecase.NewTasksUsecase(taskRepo, taskRepo)

	// Handler
	accountsH := accountshandler.NewAccountsHandler(accountsUC, cookies)
	tasksH := taskshandler.NewTasksHandler(tasksUC, cookies)

	// Router, with the cookie auth guard on protected routes
	r := router.NewRouter(accountsH, tasksH, authcookie.AuthRequired(cookies, accountsUC))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8888"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
