package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akeshr/autifyme/internal/api"
	"github.com/akeshr/autifyme/internal/service"
)

func cmdServe() {
	a := openApp()
	defer a.close()

	token := os.Getenv(a.cfg.Server.AdminTokenEnv)
	if token == "" {
		fatal("admin token not set; export %s first", a.cfg.Server.AdminTokenEnv)
	}

	registry := service.NewRegistry(a.store)
	srv := api.New(a.store, registry, a.audit, a.cfg.Server.Addr, token, a.log)

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			fatal("server: %v", err)
		}
	case <-sig:
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}
