package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"mutagen/internal/storage"
	mutapi "mutagen/pkg/mutagen"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:])
	case "records":
		return runRecords(ctx, args[1:])
	case "operators":
		return runOperators(args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: mutagenctl <run|records|operators> [flags]", msg)
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON session config path")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db", "mutagen.db", "sqlite database path")
	steps := fs.Int("steps", 0, "override the configured step count")
	seed := fs.Int64("seed", 0, "override the configured random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return usageError("run requires -config")
	}

	req, err := loadRunRequestFromConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *steps > 0 {
		req.Steps = *steps
	}
	if *seed != 0 {
		req.Seed = *seed
	}

	client, err := mutapi.New(ctx, mutapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run %s finished\n", summary.RunID)
	fmt.Printf("  operators: %s\n", strings.Join(summary.Operators, ", "))
	fmt.Printf("  steps:     %s\n", humanize.Comma(int64(summary.Steps)))
	fmt.Printf("  applies:   %s\n", humanize.Comma(int64(summary.Applies)))
	fmt.Printf("  elements:  %s\n", humanize.Comma(int64(len(summary.FinalValue))))
	return nil
}

func runRecords(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("records", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db", "mutagen.db", "sqlite database path")
	runID := fs.String("run", "", "run id to inspect")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("records requires -run")
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	records, ok, err := store.GetApplyRecords(ctx, *runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no records for run %s", *runID)
	}
	for _, rec := range records {
		if rec.Shift > 0 {
			fmt.Printf("step %3d  %-18s shift=%d\n", rec.Step, rec.Operator, rec.Shift)
			continue
		}
		fmt.Printf("step %3d  %s\n", rec.Step, rec.Operator)
	}

	snapshots, ok, err := store.GetWeightSnapshots(ctx, *runID)
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("%s weight snapshots\n", humanize.Comma(int64(len(snapshots))))
		last := snapshots[len(snapshots)-1]
		fmt.Printf("  final weights (step %d): %v\n", last.Step, last.Weights)
	}
	return nil
}

func runOperators(args []string) error {
	fs := flag.NewFlagSet("operators", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, name := range mutapi.OperatorNames() {
		fmt.Println(name)
	}
	return nil
}
