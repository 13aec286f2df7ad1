package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/simfactory/api/objects"
	"github.com/kilianp07/simfactory/app"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/infra/logger"
	"github.com/kilianp07/simfactory/infra/metrics"
	"github.com/kilianp07/simfactory/pkg/export"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <input>",
	Short: "Build an input file and expose its objects and metrics over HTTP",
	Args:  cobra.ExactArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	item, err := input.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	log := logger.New("main")
	defer func() {
		if err := a.Close(); err != nil {
			log.Errorf("app close: %v", err)
		}
	}()
	if _, err := a.Build(item); err != nil {
		return err
	}
	// The factories are not touched after Build, so a snapshot is served.
	records := a.Records()

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(nil))
	mux.Handle("/api/objects", objects.NewHandler(func() []export.ObjectRecord { return records }))
	srv := &http.Server{Addr: serveAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("server shutdown: %v", err)
		}
		cancel()
	}()
	log.Infof("serving %d objects on %s", len(records), serveAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
