package main

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/QuangTung97/sharedptr"
	"github.com/QuangTung97/sharedptr/alloc"
)

var (
	demoCount    int
	demoSeparate bool
)

func init() {
	cmd := newDemoCmd()
	cmd.Flags().IntVar(&demoCount, "count", 100, "Number of 64-bit integers in the shared array")
	cmd.Flags().BoolVar(&demoSeparate, "separate", false, "Allocate the array apart from its controller")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Share an integer array between the main goroutine and a worker",
		Long: `The demo command creates an array of integers behind a strong handle,
hands a copy of the handle to a worker goroutine, then releases both handles.
The destructor runs once, when the second handle goes away.

Example:
  sharedptr demo
  sharedptr demo --count 20 --separate -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd)
		},
	}
}

func sumArray(b []byte) uint64 {
	sum := uint64(0)
	for i := 0; i+8 <= len(b); i += 8 {
		sum += binary.LittleEndian.Uint64(b[i:])
	}
	return sum
}

func runDemo(cmd *cobra.Command) error {
	logger := zap.L()
	counting := alloc.NewCounting(alloc.Default())

	destructor := func(resource []byte) {
		logger.Info("Array destroyed", zap.Uint64("sum", sumArray(resource)))
	}

	newHandle := sharedptr.New
	if demoSeparate {
		newHandle = sharedptr.NewSeparate
	}

	arraySp, err := newHandle(demoCount*8, destructor, sharedptr.WithAllocator(counting))
	if err != nil {
		return fmt.Errorf("failed to create array: %w", err)
	}

	arr, err := arraySp.Get()
	if err != nil {
		return err
	}
	for i := 0; i < demoCount; i++ {
		binary.LittleEndian.PutUint64(arr[i*8:], uint64(i))
	}

	workerRef, err := arraySp.Clone()
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(ref *sharedptr.Strong) {
		defer wg.Done()
		defer func() {
			if err := ref.Release(); err != nil {
				logger.Error("Worker release failed", zap.Error(err))
			}
		}()

		b, err := ref.Get()
		if err != nil {
			logger.Error("Worker read failed", zap.Error(err))
			return
		}
		logger.Info("Worker read array",
			zap.Uint64("sum", sumArray(b)),
			zap.Int64("strong", ref.Controller().StrongCount()))
	}(workerRef)

	if err := arraySp.Release(); err != nil {
		return err
	}
	wg.Wait()

	stats := counting.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "allocs=%d frees=%d live=%d\n", stats.Allocs, stats.Frees, stats.LiveBlocks)
	return nil
}
