package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/QuangTung97/sharedptr"
	"github.com/QuangTung97/sharedptr/monitor"
)

var (
	monitorAddr     string
	monitorInterval time.Duration
)

func init() {
	cmd := newMonitorCmd()
	cmd.Flags().StringVar(&monitorAddr, "addr", ":8765", "Listen address")
	cmd.Flags().DurationVar(&monitorInterval, "interval", 500*time.Millisecond, "Delay between workload steps")
	rootCmd.AddCommand(cmd)
}

func newMonitorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Run a handle workload and stream its lifecycle over websocket",
		Long: `The monitor command keeps creating, cloning, observing and releasing handles,
and serves the live controller table at ws://<addr>/monitor.

Example:
  sharedptr monitor --addr :8765
  sharedptr watch ws://localhost:8765/monitor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cmd.Context())
		},
	}
}

func runMonitor(ctx context.Context) error {
	logger := zap.L()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	tracker := monitor.NewTracker(monitor.WithLogger(logger))
	handler := monitor.NewWebsocketHandler(tracker, monitor.WithLogger(logger))

	mux := http.NewServeMux()
	mux.Handle("/monitor", handler)
	server := &http.Server{
		Addr:    monitorAddr,
		Handler: mux,
	}

	serveErr := make(chan error, 1)
	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
		close(serveErr)
	}()

	logger.Info("Monitor listening", zap.String("addr", monitorAddr))
	runWorkload(ctx, tracker, logger)

	handler.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-serveErr
}

func runWorkload(ctx context.Context, tracker *monitor.Tracker, logger *zap.Logger) {
	var live []sharedptr.Releaser
	defer func() {
		if err := sharedptr.ReleaseAll(live...); err != nil {
			logger.Error("Release on exit failed", zap.Error(err))
		}
	}()

	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		live = stepWorkload(live, tracker, logger)
	}
}

func stepWorkload(live []sharedptr.Releaser, tracker *monitor.Tracker, logger *zap.Logger) []sharedptr.Releaser {
	if len(live) > 0 && rand.Intn(3) == 0 {
		i := rand.Intn(len(live))
		if err := live[i].Release(); err != nil {
			logger.Error("Release failed", zap.Error(err))
		}
		return append(live[:i], live[i+1:]...)
	}

	if len(live) > 0 {
		if s, ok := live[rand.Intn(len(live))].(*sharedptr.Strong); ok {
			if rand.Intn(2) == 0 {
				w, err := s.Observe()
				if err == nil {
					return append(live, w)
				}
			} else {
				c, err := s.Clone()
				if err == nil {
					return append(live, c)
				}
			}
		}
	}

	newHandle := sharedptr.New
	if rand.Intn(2) == 0 {
		newHandle = sharedptr.NewSeparate
	}
	s, err := newHandle(64+rand.Intn(960), nil, sharedptr.WithObserver(tracker))
	if err != nil {
		logger.Error("Create failed", zap.Error(err))
		return live
	}
	return append(live, s)
}
