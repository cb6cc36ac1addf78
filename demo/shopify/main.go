package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/saturnines/shopify-gql/pkg/config"
	"github.com/saturnines/shopify-gql/pkg/errors"
	"github.com/saturnines/shopify-gql/pkg/ratelimit"
	"github.com/saturnines/shopify-gql/pkg/transport/graphql"
)

const productsQuery = `query Products($cursor: String) {
  products(first: 50, after: $cursor) {
    pageInfo { hasNextPage endCursor }
    edges { node { id title handle } }
  }
}`

type productsPage struct {
	Products struct {
		Edges []struct {
			Node json.RawMessage `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not loaded:", err)
	}

	cfg, err := config.NewDefaultLoader().Load("demo/shopify/shopify.yaml")
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	store := ratelimit.NewMemoryStore(cfg.RateLimit.Keep)
	client, err := graphql.NewClient(cfg.Session(),
		graphql.WithTimeStore(store),
		graphql.WithLogger(logger.Sugar()),
	)
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}

	pager, err := graphql.NewPager(client, productsQuery, nil, "cursor",
		[]string{"products", "pageInfo", "endCursor"},
		[]string{"products", "pageInfo", "hasNextPage"},
	)
	if err != nil {
		log.Fatal(err)
	}

	var products []json.RawMessage
	for {
		res, err := pager.Next(context.Background())
		if errors.Is(err, graphql.ErrPagerDone) {
			break
		}
		if err != nil {
			log.Fatal("Failed to extract:", err)
		}

		var page productsPage
		if err := res.Body.Decode(&page); err != nil {
			log.Fatal(err)
		}
		for _, edge := range page.Products.Edges {
			products = append(products, edge.Node)
		}
	}

	// Save to JSON
	file, err := os.Create("products.json")
	if err != nil {
		log.Fatal(err)
	}
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(products); err != nil {
		log.Fatal(err)
	}
	file.Close()

	fmt.Printf("Extracted %d products → products.json (last request at %s)\n",
		len(products), store.Get(cfg.Session().Key()).Last().Format(time.RFC3339))
}
