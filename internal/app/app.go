package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/storefront/internal/cfg"
	v1Grpc "github.com/DRSN-tech/storefront/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/infrastructure/bakery"
	"github.com/DRSN-tech/storefront/internal/infrastructure/kafka"
	"github.com/DRSN-tech/storefront/internal/repository/redis"
	redisConv "github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/closer"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/jitter"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout    = 10 * time.Second
	ensureTopicTimeout = 10 * time.Second
	warmUpRetryDelay   = 5 * time.Second
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	catalogUC *usecase.CatalogUseCase
	sessions  *usecase.SessionStore
	grpcSrv   *v1Grpc.GRPCServer
	httpSrv   *v1Http.Server
}

// NewApp собирает зависимости. Внешние подключения (Redis, Kafka) проверяются здесь,
// чтобы ошибка конфигурации обнаруживалась до старта серверов.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(0)

	bakeryClient := bakery.NewClient(cfg.Bakery, log)

	var cacheRepo usecase.CacheRepository
	if cfg.Redis.Enabled {
		redisClient := clients.NewRedisClient(cfg.Redis)

		redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer redisCancel()
		if err := redisClient.Ping(redisCtx); err != nil {
			log.Errorf(err, "failed to connect to redis")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		cl.Add("redis", redisClient.Close)
		cacheRepo = redis.NewCacheRepo(redisClient, redisConv.NewProductConverter(), cfg.Redis, log)
	} else {
		log.Infof("Redis cache disabled, catalog is cached in memory only")
	}

	var producer usecase.EventProducer
	if cfg.Kafka != nil {
		p, err := kafka.NewProducer(log, cfg.Kafka)
		if err != nil {
			log.Errorf(err, "failed to initialize kafka producer")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := p.EnsureTopic(ensureTopicTimeout); err != nil {
			log.Warnf("Failed to ensure kafka topic %s: %v", cfg.Kafka.Topic, err)
		}

		cl.Add("kafka producer", p.Close)
		producer = p
	} else {
		log.Infof("KAFKA_BROKERS is not set, order events are disabled")
	}

	catalogUC := usecase.NewCatalogUC(bakeryClient, cacheRepo, cfg.Catalog, log)
	cl.AddFunc("catalog refresher", catalogUC.Stop)

	checkoutUC := usecase.NewCheckoutUC(bakeryClient, catalogUC, producer, log, cfg.Checkout.SubmitTimeout, checkoutHooks(log))
	// Закрывается раньше продюсера: фоновые события успевают уйти в Kafka
	cl.AddFunc("checkout events", checkoutUC.Stop)

	sessions := usecase.NewSessionStore(cfg.Session, log)
	cl.AddFunc("session janitor", sessions.Stop)

	grpcSrv := v1Grpc.NewGRPCServer(cfg.Grpc, log)
	cl.Add("grpc server", grpcSrv.Stop)

	r := chi.NewRouter()
	v1Http.NewRouter(r, log).Init(catalogUC, checkoutUC, sessions, cfg.Http.RequestTimeout)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	cl.Add("http server", httpSrv.Stop)

	return &App{
		cfg:       cfg,
		logger:    log,
		closer:    cl,
		catalogUC: catalogUC,
		sessions:  sessions,
		grpcSrv:   grpcSrv,
		httpSrv:   httpSrv,
	}, nil
}

// Run запускает серверы и фоновые воркеры и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.catalogUC.StartRefresher(ctx)
	a.sessions.StartJanitor(ctx)
	go a.warmUp(ctx)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown error")
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// warmUp загружает каталог до первого запроса и переводит health-статус в SERVING.
func (a *App) warmUp(ctx context.Context) {
	const op = "App.warmUp"

	for {
		catalog, err := a.catalogUC.Products(ctx)
		if err == nil {
			a.grpcSrv.SetServing(true)
			a.logger.Infof("Catalog loaded: %d products", len(catalog))
			return
		}

		a.logger.Warnf("Catalog warm-up failed, retrying: %v", e.Wrap(op, err))
		if err := jitter.Sleep(ctx, jitter.Duration(warmUpRetryDelay, jitter.DefaultJitter)); err != nil {
			return
		}
	}
}

func checkoutHooks(log logger.Logger) usecase.CheckoutHooks {
	return usecase.CheckoutHooks{
		OnMutate: func(items []domain.OrderItem) {
			log.Debugf("Submitting order with %d items", len(items))
		},
		OnError: func(err error) {
			log.Warnf("Checkout failed: %s", bakery.FormatErrorMessage(err))
		},
	}
}
