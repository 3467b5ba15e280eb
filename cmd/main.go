/**
 * @description
 * This is the main entry point for the transaction-core service. It
 * initializes configuration, the in-memory account ledger, the exchange-rate
 * graph, the optional RabbitMQ event producer and the command engine, wires
 * the HTTP router and starts the server.
 *
 * @dependencies
 * - log, net/http: Standard Go libraries for logging and HTTP server functionality.
 * - github.com/go-chi/chi/v5: For HTTP routing.
 * - internal/api, internal/app, internal/config, internal/currency,
 *   internal/store: Internal packages for the service.
 * - pkg/rabbitmq: Client for RabbitMQ.
 * - pkg/ratesclient: Client for the exchange-rate service.
 */

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vaultbank/transaction-core/internal/api"
	"github.com/vaultbank/transaction-core/internal/app"
	"github.com/vaultbank/transaction-core/internal/config"
	"github.com/vaultbank/transaction-core/internal/currency"
	"github.com/vaultbank/transaction-core/internal/store"
	"github.com/vaultbank/transaction-core/pkg/rabbitmq"
	"github.com/vaultbank/transaction-core/pkg/ratesclient"
)

func main() {
	// Load application configuration from environment variables.
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}
	if strings.TrimSpace(cfg.InternalAPIKey) == "" {
		log.Fatalf("level=fatal component=bootstrap msg=\"internal api key must be configured\" env=INTERNAL_API_KEY")
	}

	log.Printf("level=info component=bootstrap msg=\"starting transaction-core\" port=%s seed=%d", cfg.ServerPort, cfg.SequenceSeed)

	// Initialize the RabbitMQ producer to publish record events. The broker
	// is optional: without it the engine simply does not publish.
	var producer rabbitmq.Publisher
	if strings.TrimSpace(cfg.RabbitMQURL) == "" {
		log.Println("level=warn component=bootstrap msg=\"rabbitmq url missing; record events disabled\" env=RABBITMQ_URL")
	} else {
		eventProducer, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("level=warn component=bootstrap msg=\"rabbitmq producer unavailable; record events disabled\" err=%v", err)
		} else {
			defer eventProducer.Close()
			producer = eventProducer
			log.Println("level=info component=bootstrap msg=\"rabbitmq producer connected\"")
		}
	}

	// Initialize the banking state: ledger, rate graph and the engine.
	ledger := store.NewMemoryLedger()
	graph := currency.NewGraph()

	// Seed the rate graph from the exchange-rate service when one is
	// configured. Rates can still arrive later through the seed endpoint.
	if strings.TrimSpace(cfg.RatesServiceURL) != "" {
		ratesCtx, cancelRates := context.WithTimeout(context.Background(), 30*time.Second)
		rates, err := ratesclient.NewClient(cfg.RatesServiceURL, cfg.InternalAPIKey).FetchRates(ratesCtx)
		cancelRates()
		if err != nil {
			log.Printf("level=warn component=bootstrap msg=\"rate table fetch failed; starting without rates\" err=%v", err)
		} else {
			for _, r := range rates {
				graph.AddRate(r.From, r.To, r.Rate)
			}
			log.Printf("level=info component=bootstrap msg=\"rate table seeded\" rates=%d", len(rates))
		}
	}

	engine := app.NewService(ledger, graph, producer, cfg.SequenceSeed)

	// Commands can also arrive over the broker; bind them to the engine.
	if strings.TrimSpace(cfg.RabbitMQURL) != "" {
		consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("level=warn component=bootstrap msg=\"rabbitmq consumer unavailable; broker intake disabled\" err=%v", err)
		} else {
			defer consumer.Close()
			commandConsumer := app.NewCommandConsumer(engine)
			bindings := map[string]func([]byte) bool{
				rabbitmq.CommandSubmittedKey: commandConsumer.HandleMessage,
			}
			if err := consumer.ConsumeWithBindings(rabbitmq.RecordExchange, "transaction-core.commands", bindings); err != nil {
				log.Printf("level=warn component=bootstrap msg=\"broker intake setup failed\" err=%v", err)
			} else {
				log.Println("level=info component=bootstrap msg=\"broker command intake started\"")
			}
		}
	}

	// Initialize the API handlers and set up the HTTP router.
	handlers := api.NewEngineHandlers(engine)
	router := chi.NewRouter()
	router.Mount("/bank", api.EngineRoutes(handlers, cfg.InternalAPIKey))

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("level=info component=http msg=\"server listening\" addr=%s", serverAddr)

	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("level=fatal component=http msg=\"server stopped unexpectedly\" err=%v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("level=info component=http msg=\"shutdown started\"")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("level=error component=http msg=\"shutdown failed\" err=%v", err)
	}

	log.Println("level=info component=http msg=\"shutdown complete\"")
}
