package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mavapay/webhook-dispacther/config"
	"github.com/Mavapay/webhook-dispacther/dispatch"
	"github.com/Mavapay/webhook-dispacther/endpoint"
	"github.com/Mavapay/webhook-dispacther/endpoint/memory"
	endpointredis "github.com/Mavapay/webhook-dispacther/endpoint/redis"
	"github.com/Mavapay/webhook-dispacther/internal/http/chi"
	"github.com/Mavapay/webhook-dispacther/metrics"
	"github.com/Mavapay/webhook-dispacther/seed"
	"github.com/rs/zerolog"
)

const TIMEOUT = 30 * time.Second

/* main é a porta de entrada e saída da aplicação: é aqui que as
 * dependências são iniciadas e amarradas. As importações fluem em uma
 * única direção: transporte importa negócio, negócio importa armazenamento.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "webhook-dispatcher").Logger()

	var repo endpoint.Repository
	switch cfg.Storage {
	case config.StorageRedis:
		repo, err = endpointredis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			fmt.Println(err)
			return
		}
	default:
		repo = memory.NewRepository()
	}
	defer repo.Close(ctx)

	endpointService := endpoint.NewService(repo)

	if cfg.SeedFile != "" {
		seedConfig, err := seed.Load(cfg.SeedFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		n, err := seed.Apply(ctx, seedConfig, endpointService)
		if err != nil {
			fmt.Println(err)
			return
		}
		if n > 0 {
			logger.Info().Int("count", n).Msg("seeded default endpoints")
		}
	}

	recorder, err := metrics.NewOTelRecorder(endpointService)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer recorder.Shutdown(ctx)

	deliverer := dispatch.NewHTTPDeliverer(logger)
	engine := dispatch.NewEngine(endpointService, deliverer, cfg.GetDeliveryTimeout(), logger, recorder)

	r := chi.Handlers(ctx, endpointService, engine, recorder.Handler())
	http.Handle("/", r)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      http.DefaultServeMux,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
