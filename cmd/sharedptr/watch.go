package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/QuangTung97/sharedptr/monitor"
)

func init() {
	rootCmd.AddCommand(newWatchCmd())
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <url>",
		Short: "Print controller snapshots streamed by a monitor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0])
		},
	}
}

func runWatch(cmd *cobra.Command, url string) error {
	out := json.NewEncoder(cmd.OutOrStdout())

	client := monitor.NewWebsocketClient(url,
		monitor.WithClientLogger(zap.L()),
		monitor.WithClientSnapshotListener(func(data monitor.Snapshot) {
			if err := out.Encode(data); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
		}),
	)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		client.Shutdown()
	}()

	client.Run()
	return nil
}
