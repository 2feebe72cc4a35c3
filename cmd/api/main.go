package main

import (
	"context"
	"log"

	apiapp "github.com/afyakit/pharmacy-api-server/internal/app/api"
)

func main() {
	if err := apiapp.Run(context.Background()); err != nil {
		log.Fatalf("pharmacy API failed: %v", err)
	}
}
