package main

import (
	"context"
	"net"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
	"google.golang.org/grpc/reflection"

	"github.com/example/forum-platform/internal/platform/auth"
	"github.com/example/forum-platform/internal/platform/config"
	"github.com/example/forum-platform/internal/platform/db"
	"github.com/example/forum-platform/internal/platform/events"
	"github.com/example/forum-platform/internal/platform/httpserver"
	"github.com/example/forum-platform/internal/platform/logging"
	"github.com/example/forum-platform/internal/platform/natsconn"
	"github.com/example/forum-platform/internal/platform/run"
	"github.com/example/forum-platform/services/forum/internal/account"
	"github.com/example/forum-platform/services/forum/internal/discussion"
	"github.com/example/forum-platform/services/forum/internal/grpcapi"
	"github.com/example/forum-platform/services/forum/internal/handlers"
	"github.com/example/forum-platform/services/forum/internal/store"
	"github.com/example/forum-platform/services/forum/internal/tokens"
	"github.com/example/forum-platform/services/forum/internal/worker"
	forumconfig "github.com/example/forum-platform/services/forum/internal/config"
	"github.com/example/forum-platform/services/forum/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	fcfg, err := forumconfig.LoadForum(cfg.IsProduction())
	if err != nil {
		log.Error("forum config", zap.Error(err))
		run.Exit(1)
	}

	stores, pool := initStores(log, fcfg, cfg.IsProduction())

	iss := tokens.Issuer{Secret: fcfg.JWTSecret, AccessTokenTTL: fcfg.AccessTokenTTL}
	verifier := auth.JWTVerifier{Secret: fcfg.JWTSecret}

	var (
		nc        *nats.Conn
		js        nats.JetStreamContext
		publisher *events.Publisher
	)
	if fcfg.NATSEnabled {
		nc, js = initNATS(log, cfg.ServiceName)
	}
	publisher = events.New(js, log)

	forum := discussion.New(stores)
	accounts := account.New(stores.Users, iss, fcfg.BcryptCost)

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
		ReadyFunc: func() error {
			if pool == nil {
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(ctx)
		},
	})
	handlers.Mount(r, handlers.Deps{Forum: forum, Accounts: accounts, Events: publisher, Log: log}, verifier)

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, ServiceName: cfg.ServiceName, Logger: log, Router: r})

	lis, err := net.Listen("tcp", fcfg.GRPCAddr)
	if err != nil {
		log.Error("grpc listen", zap.Error(err))
		closeConnections(log, nc, js, pool)
		run.Exit(1)
	}
	grpcSrv := grpcapi.NewServer(verifier)
	grpcapi.Register(grpcSrv, &grpcapi.ForumService{Forum: forum, Events: publisher, Log: log})
	reflection.Register(grpcSrv)
	go func() {
		log.Info("grpc server starting", zap.String("addr", fcfg.GRPCAddr))
		if err := grpcSrv.Serve(lis); err != nil {
			log.Error("grpc serve", zap.Error(err))
		}
	}()

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		if js != nil {
			consumer := &worker.AuditConsumer{Audit: stores.Audit, Log: log}
			go func() {
				if err := consumer.Run(ctx, js); err != nil {
					log.Error("audit consumer", zap.Error(err))
				}
			}()
		}

		go func() {
			<-ctx.Done()
			stopped := make(chan struct{})
			go func() {
				grpcSrv.GracefulStop()
				close(stopped)
			}()
			select {
			case <-stopped:
			case <-time.After(10 * time.Second):
				grpcSrv.Stop()
			}
			_ = srv.Shutdown(context.Background())
		}()
		return srv.Start(log)
	})

	// run.Exit skips deferred calls, so release connections here.
	closeConnections(log, nc, js, pool)
	log.Info("exit", zap.Int("code", code))
	_ = log.Sync()
	run.Exit(code)
}

// closeConnections waits for in-flight event publishes, drains NATS and
// closes the pool.
func closeConnections(log *zap.Logger, nc *nats.Conn, js nats.JetStreamContext, pool *pgxpool.Pool) {
	const wait = 5 * time.Second
	if js != nil {
		select {
		case <-js.PublishAsyncComplete():
		case <-time.After(wait):
			log.Warn("events still pending at shutdown", zap.Int("pending", js.PublishAsyncPending()))
		}
	}
	if nc != nil {
		if err := nc.Drain(); err != nil {
			log.Warn("nats drain", zap.Error(err))
			nc.Close()
		}
		deadline := time.Now().Add(wait)
		for !nc.IsClosed() && time.Now().Before(deadline) {
			time.Sleep(50 * time.Millisecond)
		}
		if !nc.IsClosed() {
			nc.Close()
		}
	}
	if pool != nil {
		pool.Close()
	}
}
