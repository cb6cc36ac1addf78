package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	"github.com/saturnines/shopify-gql/pkg/auth"
	"github.com/saturnines/shopify-gql/pkg/config"
	"github.com/saturnines/shopify-gql/pkg/ratelimit"
	"github.com/saturnines/shopify-gql/pkg/report"
	"github.com/saturnines/shopify-gql/pkg/transport"
	"github.com/saturnines/shopify-gql/pkg/transport/graphql"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not loaded:", err)
	}

	configPath := flag.String("config", "shopify.yaml", "path to the client config")
	query := flag.String("query", "", "GraphQL query (reads stdin when empty)")
	vars := flag.String("vars", "", "JSON object of query variables")
	async := flag.Bool("async", false, "dispatch without blocking and wait on the result")
	flag.Parse()

	cfg, err := config.NewDefaultLoader().Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Unable to initialize Zap logger: %s", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	req := request{query: *query, vars: *vars, async: *async}
	if err := run(ctx, cfg, logger, prometheus.DefaultRegisterer, req, os.Stdin, os.Stdout); err != nil {
		logger.Fatalf("Request failed: %s", err)
	}
}

type request struct {
	query string
	vars  string
	async bool
}

func run(
	ctx context.Context,
	cfg *config.Client,
	logger *zap.SugaredLogger,
	reg prometheus.Registerer,
	req request,
	stdin io.Reader,
	stdout io.Writer,
	opts ...graphql.ClientOption,
) error {
	query := req.query
	if query == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read query: %w", err)
		}
		query = string(data)
	}

	var variables map[string]interface{}
	if req.vars != "" {
		if err := json.Unmarshal([]byte(req.vars), &variables); err != nil {
			return fmt.Errorf("parse -vars: %w", err)
		}
	}

	authHandler, err := auth.CreateHandler(cfg.Auth)
	if err != nil {
		return err
	}

	metrics, err := report.NewPrometheusReporter(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	client, err := graphql.NewClient(cfg.Session(), append([]graphql.ClientOption{
		graphql.WithTimeStore(ratelimit.NewMemoryStore(cfg.RateLimit.Keep)),
		graphql.WithLogger(logger),
		graphql.WithReporter(report.Multi{report.NewLogReporter(logger), metrics}),
		graphql.WithTransportOptions(
			transport.WithAuthHandler(authHandler),
			transport.WithTimeout(cfg.Timeout),
			transport.WithUserAgent(cfg.UserAgent),
		),
	}, opts...)...)
	if err != nil {
		return err
	}
	logger.Debugf("Posting to %s (async: %t)", client.Endpoint(), req.async)

	var res *graphql.Result
	if req.async {
		res, err = client.RequestAsync(ctx, query, variables).Wait(ctx)
		if err != nil {
			return err
		}
	} else {
		res = client.Request(ctx, query, variables)
	}

	if cost, ok := res.Body.Cost(); ok {
		logger.Infow("query cost",
			"actual", cost.ActualQueryCost,
			"available", cost.ThrottleStatus.CurrentlyAvailable,
		)
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newOutput(res))
}

// output is the printable form of a Result. Errors is false, true, or the
// API error list of a transported response. Body holds the error list of a
// failed response.
type output struct {
	Errors     interface{}     `json:"errors"`
	Status     *int            `json:"status"`
	Data       json.RawMessage `json:"data,omitempty"`
	Body       gqlerror.List   `json:"body,omitempty"`
	Exception  string          `json:"exception,omitempty"`
	Timestamps []string        `json:"timestamps"`
}

func newOutput(res *graphql.Result) output {
	out := output{Errors: res.Errors, Timestamps: []string{}}
	if res.Status != 0 {
		status := res.Status
		out.Status = &status
	}
	if res.Exception != nil {
		out.Exception = res.Exception.Error()
		out.Body = res.Body.GetErrors()
	} else {
		if len(res.ErrorList) > 0 {
			out.Errors = res.ErrorList
		}
		if res.Body != nil {
			out.Data = res.Body.Data
		}
	}
	for _, ts := range res.Timestamps {
		out.Timestamps = append(out.Timestamps, ts.Format("2006-01-02T15:04:05.000Z07:00"))
	}
	return out
}

func newLogger(cfg config.Log) (*zap.SugaredLogger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = level
	}

	l, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
