// Package app собирает зависимости сервиса и управляет жизненным циклом серверов.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/easyorder/internal/health"
	"github.com/vladislavdragonenkov/easyorder/internal/metrics"
	"github.com/vladislavdragonenkov/easyorder/internal/service/records"
	"github.com/vladislavdragonenkov/easyorder/internal/transport/httpapi"
	"github.com/vladislavdragonenkov/easyorder/internal/version"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// application содержит собранный сервис без запущенных слушателей.
type application struct {
	logger         *log.Entry
	storage        *runtimeStorage
	closePublisher func()

	apiHandler     http.Handler
	metricsHandler http.Handler
}

func newApplication(
	ctx context.Context,
	cfg Config,
	logger *log.Entry,
	registerer prometheus.Registerer,
	gatherer prometheus.Gatherer,
) (*application, error) {
	storage, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	publisher, closePublisher := initPublisher(cfg, logger)

	repos := metrics.InstrumentRepositories(storage.repos, metrics.NewStoreMetrics(registerer))
	svc := records.NewService(
		repos,
		publisher,
		metrics.NewEventMetrics(registerer),
		logger.WithField("layer", "service"),
	)

	healthHandler := healthcheck.NewHandler(version.Version())
	healthHandler.RegisterChecker("storage", healthcheck.NewStoreChecker("storage", storage.checker))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	return &application{
		logger:         logger,
		storage:        storage,
		closePublisher: closePublisher,
		apiHandler: httpapi.NewRouter(svc, logger.WithField("layer", "http"), httpapi.Options{
			AllowedOrigins: cfg.CORSOrigins,
		}),
		metricsHandler: mux,
	}, nil
}

// close освобождает producer и хранилище.
func (a *application) close() {
	a.closePublisher()
	if err := a.storage.close(); err != nil {
		a.logger.WithError(err).Warn("failed to close storage")
	}
}

// Run запускает HTTP API и сервер метрик и блокируется до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	a, err := newApplication(ctx, cfg, logger, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	if err != nil {
		return err
	}
	defer a.close()

	apiLis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen http: %w", err)
	}
	metricsLis, err := net.Listen("tcp", cfg.MetricsAddr)
	if err != nil {
		_ = apiLis.Close()
		return fmt.Errorf("listen metrics: %w", err)
	}

	return a.serve(ctx, apiLis, metricsLis)
}

func (a *application) serve(ctx context.Context, apiLis, metricsLis net.Listener) error {
	apiSrv := &http.Server{Handler: a.apiHandler, ReadHeaderTimeout: readHeaderTimeout}
	metricsSrv := &http.Server{Handler: a.metricsHandler, ReadHeaderTimeout: readHeaderTimeout}

	errCh := make(chan error, 2)
	go func() {
		a.logger.Infof("HTTP API слушает %s", apiLis.Addr())
		errCh <- apiSrv.Serve(apiLis)
	}()
	go func() {
		a.logger.Infof("метрики доступны по адресу %s/metrics", metricsLis.Addr())
		a.logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", metricsLis.Addr(), metricsLis.Addr(), metricsLis.Addr())
		errCh <- metricsSrv.Serve(metricsLis)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("получен сигнал остановки, останавливаем HTTP серверы")
		shutdownHTTP(apiSrv, a.logger)
		shutdownHTTP(metricsSrv, a.logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(apiSrv, a.logger)
		shutdownHTTP(metricsSrv, a.logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
