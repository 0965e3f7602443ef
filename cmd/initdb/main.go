// Command initdb initializes the database schema. Run it as a separate
// maintenance step, not at request time. Set DROP_TABLES=true to tear
// down the existing tables first.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"todo_backend/internal/platform/db"
)

func main() {
	_ = godotenv.Load()

	gdb, err := db.Open(db.LoadConfigFromEnv())
	if err != nil {
		log.Fatal(err)
	}

	if os.Getenv("DROP_TABLES") == "true" {
		if err := db.Drop(gdb); err != nil {
			log.Fatal("failed to drop tables:", err)
		}
		log.Println("existing tables dropped")
	}

	if err := db.Migrate(gdb); err != nil {
		log.Fatal("failed to migrate:", err)
	}
	log.Println("schema ready")
}
