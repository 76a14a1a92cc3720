package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/pr-poehali-dev/presentation-creation-project-1/backend/internal/config"
	"github.com/pr-poehali-dev/presentation-creation-project-1/backend/internal/storage"
	"github.com/pr-poehali-dev/presentation-creation-project-1/backend/internal/vk"
)

type HandlerFunc func(ctx context.Context, request events.APIGatewayProxyRequest, deps Dependencies) (events.APIGatewayProxyResponse, error)

// Rand is the source of randomness for the generator endpoints.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type Dependencies struct {
	Config    config.Config
	OpenStore storage.Opener
	VK        *vk.Client
	Rand      Rand
	Now       func() time.Time
	Headers   map[string]string
}

// NewDependencies wires the production collaborators for cfg.
func NewDependencies(cfg config.Config) Dependencies {
	return Dependencies{
		Config:    cfg,
		OpenStore: storage.OpenStore,
		VK:        vk.NewClient(cfg.VKAppID, cfg.VKAppSecret),
		Rand:      globalRand{},
		Now:       time.Now,
		Headers:   DefaultHeaders(),
	}
}

// withDefaults fills collaborators a caller left unset.
func (d Dependencies) withDefaults() Dependencies {
	if d.OpenStore == nil {
		d.OpenStore = storage.OpenStore
	}
	if d.VK == nil {
		d.VK = vk.NewClient(d.Config.VKAppID, d.Config.VKAppSecret)
	}
	if d.Rand == nil {
		d.Rand = globalRand{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Headers == nil {
		d.Headers = DefaultHeaders()
	}
	return d
}

var (
	// ErrConfiguration means a required setting is missing; no connection is attempted.
	ErrConfiguration = errors.New("database url not configured")
	// ErrUnavailable wraps failures to reach the database.
	ErrUnavailable = errors.New("database unavailable")
)

func DefaultHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin": "*",
		"Content-Type":                "application/json",
	}
}

// preflight answers a CORS OPTIONS request.
func preflight(methods, allowHeaders string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": methods,
			"Access-Control-Allow-Headers": allowHeaders,
			"Access-Control-Max-Age":       "86400",
		},
		Body: "",
	}
}

// jsonResponse encodes v without escaping HTML or non-ASCII characters.
func jsonResponse(status int, v any, headers map[string]string) events.APIGatewayProxyResponse {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errorResponse(fmt.Errorf("encode response: %w", err), headers)
	}
	return events.APIGatewayProxyResponse{
		Body:       string(bytes.TrimRight(buf.Bytes(), "\n")),
		StatusCode: status,
		Headers:    headers,
	}
}

func errorBody(status int, message string, headers map[string]string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": message})
	return events.APIGatewayProxyResponse{
		Body:       string(body),
		StatusCode: status,
		Headers:    headers,
	}
}

func errorResponse(err error, headers map[string]string) events.APIGatewayProxyResponse {
	log.Printf("Error: %v", err)
	return errorBody(500, err.Error(), headers)
}

func methodNotAllowed(headers map[string]string) events.APIGatewayProxyResponse {
	return errorBody(405, "Method not allowed", headers)
}

// requestID prefers the Lambda invocation id and falls back to the gateway's.
func requestID(ctx context.Context, request events.APIGatewayProxyRequest) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return request.RequestContext.RequestID
}

func pick[T any](r Rand, items []T) T {
	return items[r.IntN(len(items))]
}
