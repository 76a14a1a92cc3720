package endpoints

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pr-poehali-dev/presentation-creation-project-1/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterDispatch(t *testing.T) {
	router := NewRouter(Dependencies{Config: config.Config{}})

	tests := []struct {
		name       string
		request    events.APIGatewayProxyRequest
		wantStatus int
		wantBody   string
	}{
		{
			name:       "agenda by resource",
			request:    events.APIGatewayProxyRequest{HTTPMethod: "GET", Resource: "/agenda"},
			wantStatus: 500,
			wantBody:   `{"error":"Database URL not configured"}`,
		},
		{
			name:       "agenda by path with trailing slash",
			request:    events.APIGatewayProxyRequest{HTTPMethod: "PUT", Path: "/agenda/"},
			wantStatus: 405,
			wantBody:   `{"error":"Method not allowed"}`,
		},
		{
			name:       "proxy resource falls back to path",
			request:    events.APIGatewayProxyRequest{HTTPMethod: "GET", Resource: "/{proxy+}", Path: "/prod/test-check"},
			wantStatus: 200,
		},
		{
			name:       "unknown route",
			request:    events.APIGatewayProxyRequest{HTTPMethod: "GET", Path: "/nope"},
			wantStatus: 404,
			wantBody:   `{"error":"Not found"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := router.Handle(context.Background(), tt.request)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, resp.Body)
			}
		})
	}
}

func TestGuardRecoversPanics(t *testing.T) {
	h := Guard(func(context.Context, events.APIGatewayProxyRequest, Dependencies) (events.APIGatewayProxyResponse, error) {
		panic("nil map write")
	})
	resp, err := h(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "GET"}, Dependencies{Headers: DefaultHeaders()})
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.JSONEq(t, `{"error":"nil map write"}`, resp.Body)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
}

func TestGuardConvertsErrors(t *testing.T) {
	h := Guard(func(context.Context, events.APIGatewayProxyRequest, Dependencies) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{}, errors.New("serialization failed")
	})
	resp, err := h(context.Background(), events.APIGatewayProxyRequest{}, Dependencies{Headers: DefaultHeaders()})
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.JSONEq(t, `{"error":"serialization failed"}`, resp.Body)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/agenda", normalizePath("agenda/"))
	assert.Equal(t, "/", normalizePath("/"))
	assert.Equal(t, "", normalizePath("/{proxy+}"))
	assert.Equal(t, "", normalizePath("  "))
}
