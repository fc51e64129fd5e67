// chuiauthd runs the local development identity service. It exists so the
// chui client can be exercised end-to-end without the managed backend; state
// lives in memory and disappears on exit.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chuilabs/chui/internal/authd"
	"github.com/chuilabs/chui/internal/logging"
)

func main() {
	addr := flag.String("a", ":8787", "address and port to listen on")
	flag.Parse()

	log := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	srv := &http.Server{
		Addr:    *addr,
		Handler: authd.NewServer(log).Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(shutdownCtx, "shutdown error", "err", err)
		}
	}()

	log.Info(ctx, "starting dev identity service", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, "server error", "err", err)
		os.Exit(1)
	}
}
