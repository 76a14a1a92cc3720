package endpoints

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pr-poehali-dev/presentation-creation-project-1/backend/internal/storage"
)

type AgendaResponse struct {
	Items []storage.AgendaItem `json:"items"`
}

// AgendaGet serves the presentation agenda. On GET it creates and seeds the
// table on first use unless auto-migration is disabled, so the first call
// may write.
func AgendaGet(ctx context.Context, request events.APIGatewayProxyRequest, deps Dependencies) (events.APIGatewayProxyResponse, error) {
	switch request.HTTPMethod {
	case http.MethodOptions:
		return preflight("GET, POST, OPTIONS", "Content-Type"), nil
	case http.MethodGet:
	default:
		return methodNotAllowed(deps.Headers), nil
	}

	items, err := loadAgenda(ctx, deps)
	if err != nil {
		if errors.Is(err, ErrConfiguration) {
			return errorBody(500, "Database URL not configured", deps.Headers), nil
		}
		return errorResponse(err, deps.Headers), nil
	}
	return jsonResponse(200, AgendaResponse{Items: items}, deps.Headers), nil
}

func loadAgenda(ctx context.Context, deps Dependencies) ([]storage.AgendaItem, error) {
	if deps.Config.DatabaseURL == "" {
		return nil, ErrConfiguration
	}

	store, err := deps.OpenStore(ctx, deps.Config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close agenda store: %v", err)
		}
	}()

	if deps.Config.AgendaAutoMigrate {
		// Best-effort: the read below runs whatever bootstrap reports.
		res := storage.Bootstrap(ctx, store)
		if res.Err != nil {
			log.Printf("Error setting up agenda table: %v", res.Err)
		} else if res.Seeded > 0 {
			log.Printf("Seeded %d default agenda items", res.Seeded)
		}
	}

	items, err := store.ListAgenda(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}
