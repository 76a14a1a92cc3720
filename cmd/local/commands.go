package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/presentation-creation-project-1/backend/internal/config"
	"github.com/pr-poehali-dev/presentation-creation-project-1/backend/internal/endpoints"
	"github.com/pr-poehali-dev/presentation-creation-project-1/backend/internal/localserver"
)

// loadRouter reads .env (if present) and the environment, then builds the router.
func loadRouter(envFile string) (*endpoints.Router, config.Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, config.Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	return endpoints.NewRouter(endpoints.NewDependencies(cfg)), cfg, nil
}

func serveCmd() *cobra.Command {
	var envFile, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve all handlers over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			router, cfg, err := loadRouter(envFile)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.LocalAddr
			}

			e := localserver.New(router.Handle)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("local gateway listening on %s", addr)
				errCh <- e.Start(addr)
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default LOCAL_ADDR or :8080)")
	return cmd
}

func invokeCmd() *cobra.Command {
	var (
		envFile string
		method  string
		body    string
		query   map[string]string
	)

	cmd := &cobra.Command{
		Use:   "invoke <path>",
		Short: "Send one synthetic gateway event and print the response",
		Example: `  presentctl invoke /agenda
  presentctl invoke /gradient --query theme=warm
  presentctl invoke /gradient -X POST --body '{"colors":["#000","#fff"]}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			router, _, err := loadRouter(envFile)
			if err != nil {
				return err
			}
			req := events.APIGatewayProxyRequest{
				HTTPMethod:            strings.ToUpper(method),
				Path:                  args[0],
				Resource:              args[0],
				QueryStringParameters: query,
				Body:                  body,
			}
			req.RequestContext.RequestID = fmt.Sprintf("local-%d", time.Now().UnixNano())

			resp, err := router.Handle(cmd.Context(), req)
			if err != nil {
				return err
			}
			printResponse(cmd.OutOrStdout(), resp)
			return nil
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.Flags().StringVarP(&method, "method", "X", http.MethodGet, "HTTP method")
	cmd.Flags().StringVar(&body, "body", "", "request body")
	cmd.Flags().StringToStringVarP(&query, "query", "q", map[string]string{}, "query string parameters (k=v)")
	return cmd
}

func statusColor(code int) *color.Color {
	switch {
	case code >= 500:
		return color.New(color.FgRed, color.Bold)
	case code >= 400:
		return color.New(color.FgYellow, color.Bold)
	case code >= 300:
		return color.New(color.FgCyan, color.Bold)
	default:
		return color.New(color.FgGreen, color.Bold)
	}
}

func printResponse(w io.Writer, resp events.APIGatewayProxyResponse) {
	statusColor(resp.StatusCode).Fprintf(w, "%d %s\n", resp.StatusCode, http.StatusText(resp.StatusCode))

	names := make([]string, 0, len(resp.Headers))
	for name := range resp.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	faint := color.New(color.Faint)
	for _, name := range names {
		faint.Fprintf(w, "%s: %s\n", name, resp.Headers[name])
	}
	if resp.Body != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, resp.Body)
	}
}
