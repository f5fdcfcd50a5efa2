package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/flipforbots/internal/server"
)

// ServerCmd runs the WebSocket game server
type ServerCmd struct {
	Config string `default:"server.hcl" help:"Path to the HCL server configuration"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(c.Debug)
	if !c.Debug {
		if level, err := log.ParseLevel(cfg.Server.LogLevel); err == nil {
			logger.SetLevel(level)
		}
	}

	s := server.NewServer(cfg, logger, quartz.NewReal())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server")
		return s.Stop()
	case err := <-serverErr:
		return err
	}
}
