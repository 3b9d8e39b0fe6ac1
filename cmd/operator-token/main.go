// Command operator-token prints a bearer token for the operator API.
//
//	operator-token -sub owner -ttl 720h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/kikoi/portfolio-backend/internal/logging"
	"github.com/kikoi/portfolio-backend/pkg/auth"
)

func main() {
	sub := flag.String("sub", "owner", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	logging.Setup(false)

	secret := os.Getenv("OPERATOR_TOKEN_SECRET")
	if secret == "" {
		logging.Fatal("OPERATOR_TOKEN_SECRET is not set")
	}

	token, err := auth.IssueOperatorToken(*sub, *ttl, []byte(secret))
	if err != nil {
		logging.Fatal("issue token failed", "error", err)
	}
	fmt.Println(token)
}
