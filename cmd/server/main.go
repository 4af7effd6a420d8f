package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"payumcp/internal/customers"
	"payumcp/internal/mcp"
	"payumcp/internal/payu"
	"payumcp/internal/ratelimiter"
	"payumcp/internal/tools"
)

// loadRateLimiterConfig reads limiter settings from the environment. The
// limiter only applies to the SSE transport.
func loadRateLimiterConfig() ratelimiter.Config {
	cfg := ratelimiter.Config{
		RequestsPerWindow: 200,
		Window:            5 * time.Second,
		Enabled:           true,
	}
	if v := os.Getenv("RATE_LIMITER_REQUESTS_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RequestsPerWindow = n
		}
	}
	if v := os.Getenv("RATE_LIMITER_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	return cfg
}

// NewLogger creates a console zap logger. Logs go to stderr: on the stdio
// transport stdout belongs to the protocol.
func NewLogger(debug bool) *zap.SugaredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(os.Stderr),
		level,
	)
	return zap.New(core).Sugar()
}

func main() {
	sse := flag.Bool("sse", false, "serve over the SSE transport instead of stdio")
	port := flag.Int("port", 8888, "port for the SSE transport")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// .env is optional; credentials may come straight from the environment
	_ = godotenv.Load()

	logger := NewLogger(*debug)
	defer logger.Sync()

	creds := payu.Credentials{
		MerchantID:   os.Getenv("MERCHANT_ID"),
		ClientID:     os.Getenv("CLIENT_ID"),
		ClientSecret: os.Getenv("CLIENT_SECRET"),
		AuthToken:    os.Getenv("AUTH_TOKEN"),
	}
	logger.Infow("credentials loaded",
		"merchant_id_set", creds.MerchantID != "",
		"oauth_pair_set", creds.ClientID != "" && creds.ClientSecret != "",
		"auth_token_set", creds.AuthToken != "",
	)

	client := payu.NewClient(creds, logger)
	resolver := customers.NewResolver(client, logger)
	service := tools.NewService(client, resolver, logger)
	server := mcp.NewServer(service, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	var err error
	if *sse {
		err = server.RunSSE(ctx, fmt.Sprintf(":%d", *port), loadRateLimiterConfig())
	} else {
		err = server.Run(ctx)
	}
	if err != nil && err != context.Canceled {
		logger.Errorw("server stopped", "error", err)
		os.Exit(1)
	}
}
