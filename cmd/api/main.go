// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nftminter/internal/platform/di"
)

func main() {
	ctx := context.Background()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	// ─────────────────────────────────────────────────────────────
	// Lightweight healthz first so PORT is served even if DI fails
	// ─────────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	shutdownTimeout := 10 * time.Second
	port := ""

	cont, err := di.NewContainer(ctx)
	if err != nil {
		log.Printf("[boot] WARN: di init failed: %v (serving /healthz only)", err)
	} else {
		defer func() {
			if err := cont.Close(); err != nil {
				log.Printf("[boot] container close: %v", err)
			}
		}()
		mux.Handle("/", cont.Handler())
		port = cont.Config.Port
		shutdownTimeout = cont.Config.ShutdownTimeout
		log.Printf("[boot] mode=%s authority=%s activityStore=%s", cont.Config.Mode, cont.Chain.AuthorityAddress(), cont.Config.ActivityStore)
	}

	if port == "" {
		if p := os.Getenv("PORT"); p != "" {
			port = p
		} else {
			port = "8080"
		}
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		// mint + transfer round trips against a cluster can take a while
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─────────────────────────────────────────────────────────────
	// Graceful shutdown
	// ─────────────────────────────────────────────────────────────
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		log.Printf("[boot] received signal: %v; shutting down...", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[boot] server shutdown error: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("[boot] listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("[boot] server error: %v", err)
	}

	<-idleConnsClosed
	log.Printf("[boot] server stopped")
}
