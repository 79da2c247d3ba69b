package main

import (
	"context"
	"log"

	"github.com/clear-solutions/users-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("users API failed: %v", err)
	}
}
