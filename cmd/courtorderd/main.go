package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/joseph-ayodele/court-orders/internal/app"
	"github.com/joseph-ayodele/court-orders/internal/common"
	"github.com/joseph-ayodele/court-orders/internal/server"
)

func main() {
	fs := pflag.NewFlagSet("courtorderd", pflag.ExitOnError)
	configFile := fs.String("config", "", "optional config file (yaml, json, toml)")
	v := common.NewViper()
	common.BindFlags(v, fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := common.LoadConfig(v, *configFile)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := app.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)
	logger.Info("courtorderd.config", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("courtorderd.init_failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           server.NewHTTPHandler(a.Processor, cfg.Server, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 2)
	go func() {
		logger.Info("courtorderd.http.listening", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve: %w", err)
		}
	}()

	if cfg.Server.GRPCAddr != "" {
		grpcServer, hs := server.NewGRPCServer()
		lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
		if err != nil {
			logger.Error("courtorderd.grpc.listen_failed", "addr", cfg.Server.GRPCAddr, "error", err)
			os.Exit(1)
		}
		go server.WatchHealth(ctx, hs, a.StoreCheck, 30*time.Second, logger)
		go func() {
			logger.Info("courtorderd.grpc.listening", "addr", cfg.Server.GRPCAddr)
			if err := grpcServer.Serve(lis); err != nil {
				errCh <- fmt.Errorf("grpc serve: %w", err)
			}
		}()
		defer func() {
			hs.Shutdown()
			grpcServer.GracefulStop()
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("courtorderd.shutting_down")
	case err := <-errCh:
		logger.Error("courtorderd.serve_failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("courtorderd.http.shutdown_failed", "error", err)
	}
	logger.Info("courtorderd.stopped")
}
