// Command rimepin annotates Rime dictionary files with tone-marked pinyin,
// preserving auxiliary codes and user-database metadata fields.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/junwei/rimepin/pkg/config"
	"github.com/junwei/rimepin/pkg/dictline"
	"github.com/junwei/rimepin/pkg/phonetics"
	"github.com/junwei/rimepin/pkg/process"
	"github.com/junwei/rimepin/pkg/review"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	inputFlag := flag.String("input", "", "input directory or file (overrides config)")
	outputFlag := flag.String("output", "", "output directory or file (overrides config)")
	pinyinFlag := flag.String("pinyin-dir", "", "directory of user pinyin override files (overrides config)")
	sepFlag := flag.String("sep", "", "auxiliary tag separator pattern (overrides config)")
	dbFlag := flag.String("db", "", "sqlite file for the flagged-line manifest (overrides config)")
	workersFlag := flag.Int("workers", 0, "number of concurrent file workers (overrides config)")
	configFlag := flag.String("config", "rimepin.yaml", "path to config file")
	createConfig := flag.Bool("create-config", false, "write a default config file and exit")
	flag.Parse()

	if *createConfig {
		if err := config.WriteDefault(*configFlag); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Wrote default config to %s\n", *configFlag)
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Command-line flags win over the config file.
	if *inputFlag != "" {
		cfg.InputDir = *inputFlag
	}
	if *outputFlag != "" {
		cfg.OutputDir = *outputFlag
	}
	if *pinyinFlag != "" {
		cfg.PinyinDir = *pinyinFlag
	}
	if *sepFlag != "" {
		cfg.AuxSepRegex = *sepFlag
	}
	if *dbFlag != "" {
		cfg.ReviewDB = *dbFlag
	}
	if *workersFlag > 0 {
		cfg.Workers = *workersFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The built-in phonetic database is the one component whose failure
	// aborts the run before any file is touched.
	database, err := phonetics.NewDatabase()
	if err != nil {
		log.Fatalf("Failed to load phonetic database: %v", err)
	}

	overrides, report, err := phonetics.LoadOverrideDir(cfg.PinyinDir)
	if err != nil {
		log.Fatalf("Failed to load overrides: %v", err)
	}
	fmt.Printf("Overrides: %d files, %d characters, %d phrases\n",
		report.FilesLoaded, overrides.CharCount(), overrides.PhraseCount())
	for _, skipped := range report.SkippedFiles {
		log.Printf("Warning: skipped override file %s", skipped)
	}
	if report.LinesRejected > 0 {
		log.Printf("Warning: rejected %d override lines", report.LinesRejected)
	}

	splitter, err := dictline.NewSplitter(cfg.AuxSepRegex)
	if err != nil {
		log.Fatalf("Invalid separator pattern: %v", err)
	}

	jobs, err := discoverJobs(cfg.InputDir, cfg.OutputDir, cfg.Patterns)
	if err != nil {
		log.Fatalf("Failed to discover input files: %v", err)
	}
	if len(jobs) == 0 {
		log.Fatalf("No input files matched under %s", cfg.InputDir)
	}
	fmt.Printf("Annotating %d files from %s into %s\n", len(jobs), cfg.InputDir, cfg.OutputDir)

	proc := &process.Processor{
		Database:  database,
		Overrides: overrides,
		Splitter:  splitter,
		Workers:   cfg.Workers,
		Logger:    log.New(os.Stderr, "", log.LstdFlags),
		OnProgress: func(file string, done, total int) {
			fmt.Printf("[%d/%d] %s\n", done, total, file)
		},
	}

	var (
		conn     *sql.DB
		runID    int64
		recorder *review.Recorder
	)
	if cfg.ReviewDB != "" {
		conn, err = sql.Open("sqlite3", cfg.ReviewDB)
		if err != nil {
			log.Fatalf("Failed to open review db: %v", err)
		}
		defer conn.Close()
		if err := review.InitDB(conn); err != nil {
			log.Fatalf("Failed to initialize review db: %v", err)
		}
		runID, err = review.CreateRun(conn)
		if err != nil {
			log.Fatalf("Failed to create review run: %v", err)
		}
		recorder = review.NewRecorder(conn, runID, 64, time.Second)
		proc.Review = recorder
	}

	stats, runErr := proc.ProcessFiles(ctx, jobs)

	if recorder != nil {
		if err := recorder.Close(); err != nil {
			log.Printf("Warning: flushing review manifest: %v", err)
		}
		if err := review.FinishRun(conn, runID, stats.LinesProcessed, stats.LinesMalformed, stats.CharsUnresolved); err != nil {
			log.Printf("Warning: finishing review run: %v", err)
		}
	}

	fmt.Printf("Done. %d lines processed, %d malformed, %d characters unresolved.\n",
		stats.LinesProcessed, stats.LinesMalformed, stats.CharsUnresolved)
	if runErr != nil {
		log.Fatalf("Run finished with errors: %v", runErr)
	}
}

// discoverJobs maps matching input files to their output paths, mirroring
// the input directory layout. A single-file input maps to output directly
// (or into the output directory when that is an existing directory).
func discoverJobs(input, output string, patterns []string) ([]process.FileJob, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		out := output
		if st, err := os.Stat(output); err == nil && st.IsDir() {
			out = filepath.Join(output, filepath.Base(input))
		}
		return []process.FileJob{{In: input, Out: out}}, nil
	}

	var jobs []process.FileJob
	err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(input, path)
		if err != nil {
			return err
		}
		for _, pattern := range patterns {
			ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
			if err != nil {
				return fmt.Errorf("pattern %q: %w", pattern, err)
			}
			if ok {
				jobs = append(jobs, process.FileJob{In: path, Out: filepath.Join(output, rel)})
				break
			}
		}
		return nil
	})
	return jobs, err
}
