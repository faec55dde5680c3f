package main

import (
	"animeseason/internal/domain/config"
	"animeseason/internal/serve"
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"syscall"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动页面服务",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "监听地址，默认取配置中的 site.addr")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := serve.New(cfg, log, serve.WithLiveReload(devMode))
	if err != nil {
		return fmt.Errorf("serve init error: %w", err)
	}
	defer s.Close()

	addr := cfg.Site.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	log.Info("starting",
		zap.String("addr", addr),
		zap.String("data_dir", cfg.Build.DataDir),
		zap.String("source", cfg.Source.BaseURL),
	)
	if err := s.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serve error: %w", err)
	}
	return nil
}
