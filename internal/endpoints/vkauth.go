package endpoints

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pr-poehali-dev/presentation-creation-project-1/backend/internal/auth"
)

const stateTTL = 10 * time.Minute

var errInvalidState = errors.New("invalid or expired state")

var vkSuccessPage = template.Must(template.New("vk-success").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Авторизация...</title>
</head>
<body>
    <script>
        window.opener.postMessage({
            type: 'VK_AUTH_SUCCESS',
            token: {{.Token}},
            user: {{.User}}
        }, '*');
        window.close();
    </script>
    <p>Авторизация успешна! Это окно закроется автоматически...</p>
</body>
</html>`))

var vkErrorPage = template.Must(template.New("vk-error").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Ошибка авторизации</title>
</head>
<body>
    <script>
        window.opener.postMessage({
            type: 'VK_AUTH_ERROR',
            error: {{.Message}}
        }, '*');
        setTimeout(function () { window.close(); }, 3000);
    </script>
    <p>Ошибка авторизации: {{.Message}}</p>
    <p>Это окно закроется автоматически...</p>
</body>
</html>`))

type VKUser struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	ScreenName string `json:"screen_name"`
	Email      string `json:"email,omitempty"`
}

// VKAuth runs the VK OAuth popup flow: redirect to VK, then exchange the
// returned code for a signed session handed to the opener window.
func VKAuth(ctx context.Context, request events.APIGatewayProxyRequest, deps Dependencies) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod == http.MethodOptions {
		return preflight("GET, POST, OPTIONS", "Content-Type, Authorization"), nil
	}
	if !deps.Config.VKConfigured() {
		return errorBody(500, "VK credentials not configured", deps.Headers), nil
	}
	if request.HTTPMethod != http.MethodGet {
		return methodNotAllowed(deps.Headers), nil
	}

	query := request.QueryStringParameters
	if vkErr := query["error"]; vkErr != "" {
		return jsonResponse(400, map[string]string{
			"error":   "VK authorization failed",
			"details": vkErr,
		}, deps.Headers), nil
	}

	now := deps.Now()
	secret := deps.Config.SigningSecret()
	redirectURI := deps.Config.VKRedirectURI

	code := query["code"]
	if code == "" {
		state := auth.NewState(now, stateTTL, secret)
		return events.APIGatewayProxyResponse{
			StatusCode: 302,
			Headers: map[string]string{
				"Location":                    deps.VK.AuthorizeURL(redirectURI, state),
				"Access-Control-Allow-Origin": "*",
			},
		}, nil
	}

	if state := query["state"]; state != "" && !auth.VerifyState(state, now, secret) {
		return vkErrorResponse(errInvalidState), nil
	}

	token, err := deps.VK.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		return vkErrorResponse(err), nil
	}
	user, err := deps.VK.GetUser(ctx, token.AccessToken)
	if err != nil {
		return vkErrorResponse(err), nil
	}

	payload := VKUser{
		ID:         user.ID,
		Name:       user.FullName(),
		Avatar:     user.Photo100,
		ScreenName: user.ScreenName,
		Email:      token.Email,
	}
	session, err := auth.IssueSession(auth.SessionUser{
		VKID:       payload.ID,
		Name:       payload.Name,
		Avatar:     payload.Avatar,
		ScreenName: payload.ScreenName,
		Email:      payload.Email,
	}, now, secret)
	if err != nil {
		return vkErrorResponse(err), nil
	}

	return htmlResponse(vkSuccessPage, struct {
		Token string
		User  VKUser
	}{Token: session, User: payload}), nil
}

func vkErrorResponse(err error) events.APIGatewayProxyResponse {
	log.Printf("VK Auth Error: %v", err)
	return htmlResponse(vkErrorPage, struct{ Message string }{Message: err.Error()})
}

func htmlResponse(tmpl *template.Template, data any) events.APIGatewayProxyResponse {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return errorResponse(fmt.Errorf("render %s: %w", tmpl.Name(), err), DefaultHeaders())
	}
	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers: map[string]string{
			"Content-Type":                "text/html; charset=utf-8",
			"Access-Control-Allow-Origin": "*",
		},
		Body: buf.String(),
	}
}
