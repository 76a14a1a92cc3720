// Package localserver serves the gateway handlers over plain HTTP for local
// development, translating requests into API Gateway proxy events.
package localserver

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handler is the gateway entry point, usually endpoints.Router.Handle.
type Handler func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// New returns an echo server that forwards every request to h.
func New(h Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Any("/*", func(c echo.Context) error {
		req, err := ToProxyRequest(c.Request())
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		resp, err := h(c.Request().Context(), req)
		if err != nil {
			return err
		}
		return WriteProxyResponse(c, resp)
	})
	return e
}

// ToProxyRequest converts an HTTP request into a proxy event.
func ToProxyRequest(r *http.Request) (events.APIGatewayProxyRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayProxyRequest{}, err
	}

	req := events.APIGatewayProxyRequest{
		HTTPMethod:                      r.Method,
		Path:                            r.URL.Path,
		Resource:                        r.URL.Path,
		Headers:                         map[string]string{},
		MultiValueHeaders:               map[string][]string{},
		QueryStringParameters:           map[string]string{},
		MultiValueQueryStringParameters: map[string][]string{},
	}
	for name, values := range r.Header {
		req.Headers[name] = strings.Join(values, ",")
		req.MultiValueHeaders[name] = values
	}
	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			req.QueryStringParameters[name] = values[len(values)-1]
		}
		req.MultiValueQueryStringParameters[name] = values
	}
	if utf8.Valid(body) {
		req.Body = string(body)
	} else {
		req.Body = base64.StdEncoding.EncodeToString(body)
		req.IsBase64Encoded = true
	}
	return req, nil
}

// WriteProxyResponse writes a proxy response back through echo.
func WriteProxyResponse(c echo.Context, resp events.APIGatewayProxyResponse) error {
	header := c.Response().Header()
	for name, value := range resp.Headers {
		header.Set(name, value)
	}
	for name, values := range resp.MultiValueHeaders {
		for _, v := range values {
			header.Add(name, v)
		}
	}

	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			return err
		}
		body = decoded
	}
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	contentType := header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Blob(status, contentType, body)
}
