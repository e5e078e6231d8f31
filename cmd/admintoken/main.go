// Command admintoken prints a bearer token for the /admin endpoints.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	httpmiddleware "github.com/wolfman30/clinic-proposal/internal/http/middleware"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("sub", "sales", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		log.Fatal("ADMIN_JWT_SECRET is required")
	}

	token, err := httpmiddleware.IssueAdminToken(secret, *subject, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}
	fmt.Println(token)
}
