package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Mushinako/uniqfiles/internal/config"
	"github.com/Mushinako/uniqfiles/internal/dup"
	"github.com/Mushinako/uniqfiles/internal/logging"
	"github.com/Mushinako/uniqfiles/internal/report"
	"github.com/Mushinako/uniqfiles/internal/scan"
	"github.com/Mushinako/uniqfiles/internal/statusline"
	"github.com/Mushinako/uniqfiles/internal/store"
)

var scanConfiguration struct {
	index            string
	configPath       string
	duplicates       string
	duplicatesSmall  string
	duplicatesLarge  string
	smallSize        uint64
	largeSize        uint64
	newFiles         string
	emptyDirs        string
	format           string
	noProgress       bool
	quiet            bool
}

var scanCommand = &cobra.Command{
	Use:   "scan <base-dir>",
	Short: "Scan a directory tree for duplicate files",
	Args:  cobra.ExactArgs(1),
	Run:   Mainify(runScan),
}

func init() {
	flags := scanCommand.Flags()
	flags.StringVar(&scanConfiguration.index, "index", "", "path to the persistent baseline index (read and rewritten on each run)")
	flags.StringVar(&scanConfiguration.configPath, "config", "", "path to a TOML whitelist/threshold configuration file")
	flags.StringVar(&scanConfiguration.duplicates, "duplicates", "", "main duplication report sink path (receives the remainder band when a size split is requested)")
	flags.StringVar(&scanConfiguration.duplicatesSmall, "duplicates-small", "", "small-band duplication sink path (duplicate groups at or below --small-size)")
	flags.StringVar(&scanConfiguration.duplicatesLarge, "duplicates-large", "", "large-band duplication sink path (duplicate groups at or above --large-size)")
	flags.Uint64Var(&scanConfiguration.smallSize, "small-size", 0, "upper size bound (bytes) for --duplicates-small")
	flags.Uint64Var(&scanConfiguration.largeSize, "large-size", 0, "lower size bound (bytes) for --duplicates-large")
	flags.StringVar(&scanConfiguration.newFiles, "new-files", "", "sink path for freshly hashed (not reused from the index) file paths")
	flags.StringVar(&scanConfiguration.emptyDirs, "empty-dirs", "", "sink path for directories with no raw entries")
	flags.StringVar(&scanConfiguration.format, "format", "json", "report format: json or yaml")
	flags.BoolVar(&scanConfiguration.noProgress, "no-progress", false, "suppress the live status line")
	flags.BoolVar(&scanConfiguration.quiet, "quiet", false, "suppress the live status line (as --no-progress does)")
	rootCommand.AddCommand(scanCommand)
}

func runScan(cmd *cobra.Command, args []string) error {
	baseDir := args[0]
	runID := uuid.NewString()
	runLogger := logging.RootLogger.ForRun(runID)
	runLogger.Debugf("starting scan of %s", baseDir)

	cfg, err := config.Load(scanConfiguration.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	idxStore := storeForPath(scanConfiguration.index)
	baseline := map[string]scan.FileRecord{}
	if idxStore != nil {
		baseline, err = idxStore.Load()
		if err != nil {
			return fmt.Errorf("loading index: %w", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	printer := &statusline.Printer{Disabled: scanConfiguration.noProgress || scanConfiguration.quiet}
	logging.SetStatusLineBreak(printer.BreakIfNonEmpty)
	defer logging.SetStatusLineBreak(nil)

	result, runErr := scan.Run(ctx, scan.Options{
		BasePath:  baseDir,
		Whitelist: cfg.Whitelist,
		Baseline:  baseline,
		OnProgress: func(progress *scan.Progress, path string) {
			printer.Print(fmt.Sprintf("%s (%s/%s) ETA %s  %s",
				progress.Percent(),
				humanize.Bytes(progress.Current),
				humanize.Bytes(progress.Total),
				progress.ETA(),
				path))
		},
	})
	printer.Clear()

	if runErr != nil {
		runLogger.Error(runErr)
		if result == nil {
			return runErr
		}
		// Fall through: still persist and report whatever was accounted
		// for before cancellation. Partial results are meaningful; the
		// removed-path list is already forced empty by scan.Run itself.
	}

	if idxStore != nil {
		// After a completed run, result.Records holds exactly one entry per
		// file seen this run (reused or freshly hashed); writing it back
		// as-is both adds new files and drops removed ones. A run that
		// stopped early saw only part of the tree, so the baseline rows are
		// kept and only overwritten by this run's records: nothing is
		// deleted from the index.
		updated := make(map[string]scan.FileRecord, len(result.Records))
		if runErr != nil {
			for path, r := range baseline {
				updated[path] = r
			}
		}
		for _, r := range result.Records {
			updated[r.Path] = r
		}
		if err := idxStore.Save(updated); err != nil {
			return fmt.Errorf("saving index: %w", err)
		}
	}

	if err := writeSinks(result, cfg, runLogger); err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}
	return nil
}

// writeSinks partitions the duplications by the configured size thresholds
// and writes every requested sink concurrently, since each is an
// independent file and none depends on another's output.
func writeSinks(result *scan.Result, cfg *config.Config, runLogger *logging.Logger) error {
	groups := dup.Group(result.Records)
	small, remainder, large := dup.Partition(groups, smallThreshold(cfg), largeThreshold(cfg))

	writer := report.ForFormat(strings.ToLower(scanConfiguration.format))

	type sink struct {
		name string
		run  func() error
	}
	sinks := []sink{
		{"duplicates", func() error { return writer.WriteDuplications(scanConfiguration.duplicates, remainder) }},
		{"duplicates-small", func() error { return writer.WriteDuplications(scanConfiguration.duplicatesSmall, small) }},
		{"duplicates-large", func() error { return writer.WriteDuplications(scanConfiguration.duplicatesLarge, large) }},
		{"new-files", func() error { return writer.WriteNewFiles(scanConfiguration.newFiles, result.NewPaths) }},
		{"empty-dirs", func() error { return writer.WriteEmptyDirs(scanConfiguration.emptyDirs, result.EmptyDirs) }},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(sinks))
	for i, s := range sinks {
		wg.Add(1)
		go func(i int, s sink) {
			defer wg.Done()
			if err := s.run(); err != nil {
				errs[i] = fmt.Errorf("writing %s sink: %w", s.name, err)
			}
		}(i, s)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			runLogger.Error(err)
			return err
		}
	}
	return nil
}

// smallThreshold returns the effective --small-size threshold as a pointer,
// nil when neither the flag nor the config file set one (no small-band
// split requested).
func smallThreshold(cfg *config.Config) *uint64 {
	if scanConfiguration.smallSize != 0 {
		return &scanConfiguration.smallSize
	}
	if cfg.Thresholds.SmallMax != 0 {
		return &cfg.Thresholds.SmallMax
	}
	return nil
}

// largeThreshold returns the effective --large-size threshold as a pointer,
// nil when neither the flag nor the config file set one (no large-band
// split requested).
func largeThreshold(cfg *config.Config) *uint64 {
	if scanConfiguration.largeSize != 0 {
		return &scanConfiguration.largeSize
	}
	if cfg.Thresholds.LargeMin != 0 {
		return &cfg.Thresholds.LargeMin
	}
	return nil
}

// storeForPath picks a Store implementation from the index file's
// extension: ".msgpack" selects the compact binary form, any other
// non-empty path selects YAML. An empty path returns nil, meaning no
// baseline persistence was requested.
func storeForPath(path string) store.Store {
	if path == "" {
		return nil
	}
	if strings.HasSuffix(path, ".msgpack") {
		return &store.MsgpackStore{Path: path}
	}
	return &store.YAMLStore{Path: path}
}
