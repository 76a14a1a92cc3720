package endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Palettes are grouped by theme in runs of four, in themeOrder.
var gradientPalettes = [][2]string{
	// professional
	{"#667eea", "#764ba2"},
	{"#667eea", "#f093fb"},
	{"#4facfe", "#00f2fe"},
	{"#43e97b", "#38f9d7"},
	// warm
	{"#fa709a", "#fee140"},
	{"#ffecd2", "#fcb69f"},
	{"#ff9a9e", "#fecfef"},
	{"#ff8a80", "#ea4c46"},
	// cool
	{"#a8edea", "#fed6e3"},
	{"#30cfd0", "#91a7ff"},
	{"#a1c4fd", "#c2e9fb"},
	{"#fbc2eb", "#a6c1ee"},
	// creative
	{"#667eea", "#764ba2"},
	{"#f093fb", "#f5576c"},
	{"#c471f5", "#fa71cd"},
	{"#b721ff", "#21d4fd"},
	// nature
	{"#56ab2f", "#a8e6cf"},
	{"#11998e", "#38ef7d"},
	{"#00b09b", "#96c93d"},
	{"#1e3c72", "#2a5298"},
	// energy
	{"#ff7e5f", "#feb47b"},
	{"#ff6b6b", "#feca57"},
	{"#ffa726", "#fb8c00"},
	{"#ff9966", "#ff5722"},
}

var themeOrder = []string{"professional", "warm", "cool", "creative", "nature", "energy"}

const palettesPerTheme = 4

var gradientDirections = []string{
	"to right",
	"to left",
	"to bottom",
	"to top",
	"to bottom right",
	"to bottom left",
	"to top right",
	"to top left",
	"45deg",
	"135deg",
	"225deg",
	"315deg",
}

type GradientVariation struct {
	CSS       string   `json:"css"`
	Colors    []string `json:"colors"`
	Direction string   `json:"direction"`
}

type GradientResponse struct {
	Gradient   string              `json:"gradient"`
	Colors     []string            `json:"colors"`
	Direction  string              `json:"direction"`
	Theme      string              `json:"theme,omitempty"`
	Variations []GradientVariation `json:"variations,omitempty"`
	Custom     bool                `json:"custom,omitempty"`
	RequestID  string              `json:"request_id"`
}

type gradientRequest struct {
	Colors    []string `json:"colors"`
	Direction string   `json:"direction"`
}

func linearGradient(direction string, colors []string) string {
	return fmt.Sprintf("linear-gradient(%s, %s, %s)", direction, colors[0], colors[1])
}

// palettesForTheme returns the theme's palettes, or all of them for
// "random" and unknown themes.
func palettesForTheme(theme string) [][2]string {
	for i, name := range themeOrder {
		if name == theme {
			start := i * palettesPerTheme
			return gradientPalettes[start : start+palettesPerTheme]
		}
	}
	return gradientPalettes
}

func Gradient(ctx context.Context, request events.APIGatewayProxyRequest, deps Dependencies) (events.APIGatewayProxyResponse, error) {
	switch request.HTTPMethod {
	case http.MethodOptions:
		return preflight("GET, POST, OPTIONS", "Content-Type, Authorization"), nil
	case http.MethodGet:
		return gradientGet(ctx, request, deps), nil
	case http.MethodPost:
		return gradientPost(ctx, request, deps), nil
	default:
		return methodNotAllowed(deps.Headers), nil
	}
}

func gradientGet(ctx context.Context, request events.APIGatewayProxyRequest, deps Dependencies) events.APIGatewayProxyResponse {
	theme := request.QueryStringParameters["theme"]
	if theme == "" {
		theme = "random"
	}

	palette := pick(deps.Rand, palettesForTheme(theme))
	direction := pick(deps.Rand, gradientDirections)

	variations := make([]GradientVariation, 0, 3)
	for i := 0; i < 3; i++ {
		p := pick(deps.Rand, gradientPalettes)
		d := pick(deps.Rand, gradientDirections)
		variations = append(variations, GradientVariation{
			CSS:       linearGradient(d, p[:]),
			Colors:    []string{p[0], p[1]},
			Direction: d,
		})
	}

	return jsonResponse(200, GradientResponse{
		Gradient:   linearGradient(direction, palette[:]),
		Colors:     []string{palette[0], palette[1]},
		Direction:  direction,
		Theme:      theme,
		Variations: variations,
		RequestID:  requestID(ctx, request),
	}, deps.Headers)
}

func gradientPost(ctx context.Context, request events.APIGatewayProxyRequest, deps Dependencies) events.APIGatewayProxyResponse {
	body := strings.TrimSpace(request.Body)
	if body == "" {
		body = "{}"
	}
	var req gradientRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return errorBody(400, "Invalid JSON in request body", deps.Headers)
	}
	if len(req.Colors) < 2 {
		return errorBody(400, "Need at least 2 colors for gradient", deps.Headers)
	}
	if req.Direction == "" {
		req.Direction = "to right"
	}

	colors := req.Colors[:2]
	return jsonResponse(200, GradientResponse{
		Gradient:  linearGradient(req.Direction, colors),
		Colors:    colors,
		Direction: req.Direction,
		Custom:    true,
		RequestID: requestID(ctx, request),
	}, deps.Headers)
}
