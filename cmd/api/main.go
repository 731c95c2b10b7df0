// The API process serves the user-management HTTP surface. Every
// operation is delegated to a durable workflow; the HTTP layer blocks on
// the workflow result and maps it to a response.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	"github.com/ahrav/go-userflow/internal/config"
	"github.com/ahrav/go-userflow/internal/dispatch"
	httpapi "github.com/ahrav/go-userflow/internal/http"
	"github.com/ahrav/go-userflow/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on system env vars")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.Init("userflow-api", cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("init logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
		Logger:    logging.NewTemporalAdapter(logger),
	})
	if err != nil {
		logger.Fatalw("temporal connection failed",
			"host_port", cfg.TemporalHostPort,
			"error", err)
	}
	defer c.Close()

	d := dispatch.NewDispatcher(c, cfg.TaskQueue, cfg.ActivityConfig(), logger)
	router := httpapi.NewRouter(d, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("api listening", "addr", srv.Addr, "task_queue", cfg.TaskQueue)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Infow("api shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Errorw("shutdown incomplete", "error", err)
		}
	case err := <-errCh:
		logger.Fatalw("api server failed", "error", err)
	}
}
