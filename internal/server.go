package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/trainpulse/internal/aggregation"
	"github.com/2beens/trainpulse/internal/analytics"
	"github.com/2beens/trainpulse/internal/config"
	"github.com/2beens/trainpulse/internal/db"
	"github.com/2beens/trainpulse/internal/ingest"
	"github.com/2beens/trainpulse/internal/metrics"
	"github.com/2beens/trainpulse/internal/middleware"
	"github.com/2beens/trainpulse/internal/profile"
	"github.com/2beens/trainpulse/internal/recommendation"
	"github.com/2beens/trainpulse/internal/training"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

const eventCursorTTL = 48 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	aggregationRepo *aggregation.Repo
	auditor         *aggregation.Auditor
	processor       *ingest.Processor
	profileRepo     *profile.Repo
	recsRepo        *recommendation.Repo
	recsManager     *recommendation.Manager

	cronScheduler *cron.Cron

	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config        *config.Config
	RedisPassword string
	VersionInfo   string
}

func NewServer(ctx context.Context, params NewServerParams) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: true,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	promRegistry := prometheus.NewRegistry()
	metricsManager := metrics.NewManager("trainpulse", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, strconv.Itoa(params.Config.RedisPort)),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	analyticsRepo := analytics.NewRepo(dbPool)
	aggregationRepo := aggregation.NewRepo(dbPool)
	profileRepo := profile.NewRepo(dbPool)
	trainingRepo := training.NewRepo(dbPool)

	store := aggregation.NewStore(aggregationRepo, metricsManager)
	auditor := aggregation.NewAuditor(aggregation.NewAuditorParams{
		Source:   analyticsRepo,
		Stats:    aggregationRepo,
		Prefs:    profileRepo,
		Metrics:  metricsManager,
		Lookback: time.Duration(params.Config.ReconcileLookbackDays) * 24 * time.Hour,
		Budget:   time.Duration(params.Config.ReconcileBudgetSeconds) * time.Second,
	})

	processor := ingest.NewProcessor(ingest.NewProcessorParams{
		Normalizer: analytics.NewNormalizer(),
		Repo:       analyticsRepo,
		Store:      store,
		Profiles:   profileRepo,
		Cursor:     ingest.NewCursor(rdb, eventCursorTTL),
		Metrics:    metricsManager,
	})

	recsRepo := recommendation.NewRepo(dbPool)
	recsManager := recommendation.NewManager(recommendation.NewManagerParams{
		Repo:     recsRepo,
		Resolver: recommendation.NewResolver(trainingRepo, trainingRepo),
		Applier:  recommendation.NewApplier(dbPool),
		Metrics:  metricsManager,
		TTL:      time.Duration(params.Config.RecommendationTTLDays) * 24 * time.Hour,
	})

	return &Server{
		versionInfo:     params.VersionInfo,
		config:          params.Config,
		dbPool:          dbPool,
		redisClient:     rdb,
		aggregationRepo: aggregationRepo,
		auditor:         auditor,
		processor:       processor,
		profileRepo:     profileRepo,
		recsRepo:        recsRepo,
		recsManager:     recsManager,
		metricsManager:  metricsManager,
		promRegistry:    promRegistry,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	eventsHandler := ingest.NewHandler(s.processor)
	r.HandleFunc("/events/workout", eventsHandler.HandleWorkoutEvent).Methods("POST", "OPTIONS").Name("workout-event")

	statsHandler := aggregation.NewHandler(s.aggregationRepo, s.auditor)
	r.HandleFunc("/stats/{userID}/weekly", statsHandler.HandleGetWeekly).Methods("GET", "OPTIONS").Name("weekly-stat")
	r.HandleFunc("/stats/{userID}/muscles", statsHandler.HandleListMuscleSeries).Methods("GET", "OPTIONS").Name("muscle-series")
	r.HandleFunc("/stats/{userID}/exercise", statsHandler.HandleListExerciseSeries).Methods("GET", "OPTIONS").Name("exercise-series")
	r.HandleFunc("/stats/{userID}/rollup", statsHandler.HandleGetRollup).Methods("GET", "OPTIONS").Name("rollup-stat")
	r.HandleFunc("/stats/{userID}/reconcile", statsHandler.HandleReconcile).Methods("POST", "OPTIONS").Name("reconcile")
	r.HandleFunc("/stats/reconcile/sweep", statsHandler.HandleSweep).Methods("POST", "OPTIONS").Name("reconcile-sweep")

	recsHandler := recommendation.NewHandler(s.recsManager, s.recsRepo, s.profileRepo)
	r.HandleFunc("/insights", recsHandler.HandleInsights).Methods("POST", "OPTIONS").Name("new-insights")
	r.HandleFunc("/recommendations/{userID}", recsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-recommendations")
	r.HandleFunc("/recommendations/review/{id}", recsHandler.HandleReview).Methods("POST", "OPTIONS").Name("review-recommendation")

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(s.versionInfo)); err != nil {
			log.Errorf("failed to write version response: %s", err)
		}
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

// cronSetup schedules the background sweeps: nightly reconciliation of
// drifted aggregates and nightly expiry of stale recommendations.
func (s *Server) cronSetup(ctx context.Context) error {
	c := cron.New()

	if err := c.AddFunc("@daily", func() {
		result, err := s.auditor.Sweep(ctx)
		if err != nil {
			log.Errorf("reconciliation sweep: %s", err)
			return
		}
		log.Infof(
			"reconciliation sweep done: processed %d, recalculated %d, skipped %d, failed %d",
			result.Processed, result.Succeeded, result.Skipped, result.Failed,
		)
	}); err != nil {
		return fmt.Errorf("schedule reconciliation sweep: %w", err)
	}

	if err := c.AddFunc("@daily", func() {
		if _, err := s.recsManager.ExpireStale(ctx); err != nil {
			log.Errorf("recommendation expiry sweep: %s", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule recommendation expiry sweep: %w", err)
	}

	c.Start()
	s.cronScheduler = c
	return nil
}

func (s *Server) Serve(ctx context.Context, host string) error {
	router := s.routerSetup()

	if err := s.cronSetup(ctx); err != nil {
		return err
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(s.config.Port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(host, strconv.Itoa(s.config.MetricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
	return nil
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
	}
	log.Warnln("server shut down")

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
	}
	log.Warnln("metrics server shut down")
}
