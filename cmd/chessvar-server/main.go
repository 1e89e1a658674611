package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appcfg "github.com/park285/chessvar/internal/config"
	"github.com/park285/chessvar/internal/httpapi"
	"github.com/park285/chessvar/internal/match"
	"github.com/park285/chessvar/internal/msgcat"
	"github.com/park285/chessvar/internal/obslog"
	"github.com/park285/chessvar/internal/render"
	"github.com/park285/chessvar/internal/variant"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = obslog.L().Sync() }()

	rule, _ := variant.ParseDoubleStepRule(cfg.PawnDoubleStep)
	mgr, err := match.NewManager(cfg.RedisURL,
		match.WithTTL(time.Duration(cfg.MatchTTLSec)*time.Second),
		match.WithDoubleStepRule(rule),
	)
	if err != nil {
		log.Fatalf("match manager init error: %v", err)
	}

	repo, err := openRepository(cfg)
	if err != nil {
		log.Fatalf("result store init error: %v", err)
	}
	mgr.AttachRepository(repo)

	msgs, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	srv := httpapi.New(mgr, render.NewSVGBoardRenderer(), msgs, httpapi.WithHistoryLimit(cfg.HistoryLimit))
	go func() {
		obslog.L().Info("http_listen", zap.String("addr", cfg.HTTPAddr), zap.String("result_store", cfg.ResultStore))
		if err := srv.ListenAndServe(cfg.HTTPAddr); err != nil {
			log.Fatalf("http server error: %v", err)
		}
	}()

	// Wait for termination signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		obslog.L().Warn("http_shutdown_error", zap.Error(err))
	}
	_ = mgr.Close()
	_ = repo.Close()
}

func openRepository(cfg *appcfg.AppConfig) (match.Repository, error) {
	switch cfg.ResultStore {
	case appcfg.StorePostgres:
		repo, err := match.NewPostgresRepository(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = repo.Close()
			return nil, err
		}
		return repo, nil
	case appcfg.StoreBadger:
		return match.NewBadgerRepository(cfg.BadgerDir)
	default:
		return match.NewMemoryRepository(), nil
	}
}
