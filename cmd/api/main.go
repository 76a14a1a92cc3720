package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pr-poehali-dev/presentation-creation-project-1/backend/internal/config"
	"github.com/pr-poehali-dev/presentation-creation-project-1/backend/internal/endpoints"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	router := endpoints.NewRouter(endpoints.NewDependencies(cfg))
	lambda.Start(router.Handle)
}
