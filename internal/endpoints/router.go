package endpoints

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Routes maps gateway resource paths to handlers.
func Routes() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"/agenda":             AgendaGet,
		"/gradient":           Gradient,
		"/presentation-title": PresentationTitle,
		"/test-check":         Health,
		"/auth/vk":            VKAuth,
	}
}

// Guard converts panics and returned errors into a 500 JSON response so
// nothing escapes to the Lambda runtime.
func Guard(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, request events.APIGatewayProxyRequest, deps Dependencies) (resp events.APIGatewayProxyResponse, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic serving %s %s: %v", request.HTTPMethod, request.Path, r)
				resp = errorResponse(fmt.Errorf("%v", r), deps.Headers)
				err = nil
			}
		}()
		resp, err = next(ctx, request, deps)
		if err != nil {
			return errorResponse(err, deps.Headers), nil
		}
		return resp, nil
	}
}

type Router struct {
	deps   Dependencies
	routes map[string]HandlerFunc
	// paths sorted longest first for suffix matching.
	paths []string
}

func NewRouter(deps Dependencies) *Router {
	r := &Router{deps: deps.withDefaults(), routes: map[string]HandlerFunc{}}
	for path, h := range Routes() {
		r.routes[path] = Guard(h)
		r.paths = append(r.paths, path)
	}
	sort.Slice(r.paths, func(i, j int) bool {
		return len(r.paths[i]) > len(r.paths[j])
	})
	return r
}

// Handle is the Lambda entry point.
func (r *Router) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h, ok := r.match(request)
	if !ok {
		return errorBody(404, "Not found", r.deps.Headers), nil
	}
	return h(ctx, request, r.deps)
}

func (r *Router) match(request events.APIGatewayProxyRequest) (HandlerFunc, bool) {
	for _, candidate := range []string{request.Resource, request.Path} {
		path := normalizePath(candidate)
		if path == "" {
			continue
		}
		if h, ok := r.routes[path]; ok {
			return h, true
		}
		// Tolerate a stage or base-path prefix such as /prod/agenda.
		for _, route := range r.paths {
			if strings.HasSuffix(path, route) {
				return r.routes[route], true
			}
		}
	}
	return nil, false
}

func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || strings.Contains(p, "{proxy+}") {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
