package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.elastic.co/apm/module/apmgin"

	depositController "github.com/openrds/depositsync/internal/api/controllers/deposit"
	statusController "github.com/openrds/depositsync/internal/api/controllers/status"
	"github.com/openrds/depositsync/internal/config"
	apmTracing "github.com/openrds/depositsync/internal/infra/apm/tracing"
	cronSchema "github.com/openrds/depositsync/internal/infra/cron/schema"
	"github.com/openrds/depositsync/internal/infra/events"
	"github.com/openrds/depositsync/internal/infra/remote"
	"github.com/openrds/depositsync/internal/infra/server/binding/validation"
	"github.com/openrds/depositsync/internal/infra/server/routing"
	depositsRouting "github.com/openrds/depositsync/internal/infra/server/routing/deposits"
	eventsRouting "github.com/openrds/depositsync/internal/infra/server/routing/events"
)

var defaultSchemaRefreshInterval = 15 * time.Minute

// Components holds everything the shell needs to serve: the sync client, the
// event store, the schema refresher and the gin engine they hang off.
type Components struct {
	conf            *config.App
	ginEngine       *gin.Engine
	schemaRefresher cronSchema.Refresher
}

func NewComponents(conf *config.App) (*Components, error) {
	if len(conf.Remote.Address) == 0 {
		return nil, fmt.Errorf("remote.address is not configured")
	}

	syncService := remote.NewService(conf.Remote)
	eventStore := events.NewStore(conf.Events)
	tracer := apmTracing.NewTracer()

	refreshConf := config.SchemaRefresh{RunInterval: defaultSchemaRefreshInterval}
	if conf.SchemaRefresh != nil {
		refreshConf = *conf.SchemaRefresh
	}
	schemaRefresher := cronSchema.NewRefresher(syncService, tracer, refreshConf)

	validation.SetUpValidators()

	ginEngine := gin.New()
	ginEngine.Use(logger.SetLogger(), gin.Recovery())
	ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	ginEngine.Use(apmgin.Middleware(ginEngine))
	ginEngine.NoRoute(routing.NoRoute)
	ginEngine.NoMethod(routing.NoMethod)

	topLevelGroup := routing.NewTopLevelRoutesGroup(conf.Auth, ginEngine)

	depositsHandler := depositsRouting.RoutesHandler{
		Controller: depositController.New(syncService, schemaRefresher),
	}
	depositsHandler.RegisterRoutes(topLevelGroup)

	eventsHandler := eventsRouting.RoutesHandler{
		Controller: statusController.New(eventStore),
	}
	eventsHandler.RegisterRoutes(topLevelGroup)

	return &Components{
		conf:            conf,
		ginEngine:       ginEngine,
		schemaRefresher: schemaRefresher,
	}, nil
}

// Run starts the schema refresher and the HTTP server, blocking until a
// SIGINT or SIGTERM arrives, then shuts both down, giving in-flight requests
// up to the configured shutdown timeout to finish.
func (c *Components) Run() {
	c.schemaRefresher.Start()

	httpServer := &http.Server{
		Addr:    c.conf.BindAddress,
		Handler: c.ginEngine,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("Starting server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	c.schemaRefresher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), c.conf.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shut down")
	}
	log.Info().Msg("Server exited")
}
