package endpoints

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

type HealthResponse struct {
	Number    string `json:"number"`
	Status    string `json:"status"`
	Method    string `json:"method"`
	Timestamp string `json:"timestamp"`
}

// Health answers any method so gateway limits and routing can be checked.
func Health(_ context.Context, request events.APIGatewayProxyRequest, deps Dependencies) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod == http.MethodOptions {
		return preflight("GET, POST, OPTIONS", "Content-Type, Authorization"), nil
	}
	return jsonResponse(200, HealthResponse{
		Number:    "1",
		Status:    "working",
		Method:    request.HTTPMethod,
		Timestamp: deps.Now().UTC().Format("2006-01-02"),
	}, deps.Headers), nil
}
