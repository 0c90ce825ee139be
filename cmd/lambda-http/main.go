// Command lambda-http serves the job prep API behind an API Gateway HTTP API.
//
//	GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http
package main

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"jobprep-backend/internal/bootstrap"
	"jobprep-backend/internal/shared/config"
	"jobprep-backend/internal/shared/telemetry"
)

type buildFunc func(ctx context.Context) (*gin.Engine, error)

// coldStart builds the router on first use and keeps it for the life of the
// container. A failed build is not kept; the next invocation builds again.
type coldStart struct {
	build buildFunc

	mu    sync.Mutex
	proxy *ginadapter.GinLambdaV2
}

// setup loads configuration up front so missing settings fail the Lambda init
// phase instead of every request.
func setup() (*coldStart, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return &coldStart{build: func(ctx context.Context) (*gin.Engine, error) {
		app, err := bootstrap.Build(ctx, cfg)
		if err != nil {
			return nil, err
		}
		telemetry.Info("lambda.ready", map[string]any{"env": cfg.Env, "provider": cfg.LLMProvider})
		return app.Router, nil
	}}, nil
}

func (s *coldStart) ready(ctx context.Context) (*ginadapter.GinLambdaV2, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proxy != nil {
		return s.proxy, nil
	}
	router, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	s.proxy = ginadapter.NewV2(router)
	return s.proxy, nil
}

func (s *coldStart) handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	proxy, err := s.ready(ctx)
	if err != nil {
		telemetry.Error("lambda.bootstrap_failed", map[string]any{"error": err})
		return events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"detail":"Unexpected server error"}`,
		}, nil
	}
	return proxy.ProxyWithContext(ctx, req)
}

func main() {
	handler, err := setup()
	if err != nil {
		telemetry.Error("lambda.config_invalid", map[string]any{"error": err})
		os.Exit(1)
	}
	lambda.Start(handler.handle)
}
