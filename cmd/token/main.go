// Command token mints a bearer token for a user id using the server's JWT settings.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/comitanigiacomo/kanso-heatmap/internal/config"
	"github.com/comitanigiacomo/kanso-heatmap/internal/core/services"
)

func main() {
	userID := flag.String("user", "", "user id to put in the token subject")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: token -user <id>")
		os.Exit(2)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	token, err := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Duration).GenerateToken(*userID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}

	fmt.Println(token)
}
