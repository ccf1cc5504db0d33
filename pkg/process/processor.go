// Package process runs the annotation pipeline over dictionary files:
// classify each line, split off the auxiliary tag, resolve the
// transcription, and reassemble the line with every untouched field intact.
package process

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/junwei/rimepin/pkg/annotate"
	"github.com/junwei/rimepin/pkg/dictline"
)

// Flagger receives lines worth reviewing: malformed lines and lines with
// unresolved characters. Implementations must tolerate concurrent calls.
type Flagger interface {
	FlagLine(ctx context.Context, file string, lineNo int, reason, content string) error
}

// Flag reasons recorded for review.
const (
	ReasonMalformed  = "malformed"
	ReasonUnresolved = "unresolved"
)

// FileJob names one input file and its output destination.
type FileJob struct {
	In  string
	Out string
}

// Processor annotates dictionary files. The database and override store are
// read-only for the duration of a run, so files may be processed
// concurrently without further synchronization.
type Processor struct {
	Database  annotate.Dict
	Overrides annotate.Dict
	Splitter  *dictline.Splitter

	// Workers bounds file-level concurrency in ProcessFiles. Zero means one.
	Workers int
	// Logger receives informational messages. nil means no logging.
	Logger *log.Logger
	// OnProgress, when set, is called after each file completes.
	OnProgress func(file string, done, total int)
	// Review, when set, records flagged lines for later inspection.
	Review Flagger
}

// ProcessFile annotates a single file. Output goes to a temporary file next
// to outPath and is renamed into place only on full success, so an aborted
// run never leaves a partial file that looks valid.
func (p *Processor) ProcessFile(ctx context.Context, inPath, outPath string) (Stats, error) {
	var stats Stats

	data, err := os.ReadFile(inPath)
	if err != nil {
		return stats, fmt.Errorf("read %s: %w", inPath, err)
	}

	content := string(data)
	trailingNewline := strings.HasSuffix(content, "\n")
	content = strings.TrimSuffix(content, "\n")

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(content, "\n")
	}

	format := dictline.DetectFormat(lines)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return stats, fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".tmp-*")
	if err != nil {
		return stats, fmt.Errorf("create temp output: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmp)
	annotator := &annotate.Annotator{Overrides: p.Overrides, Database: p.Database}

	for i, rawLine := range lines {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}

		line, hadCR := strings.CutSuffix(rawLine, "\r")
		out := p.processLine(ctx, annotator, inPath, i+1, line, format, &stats)
		if hadCR {
			out += "\r"
		}

		if _, err := w.WriteString(out); err != nil {
			return stats, fmt.Errorf("write output: %w", err)
		}
		if i < len(lines)-1 || trailingNewline {
			if err := w.WriteByte('\n'); err != nil {
				return stats, fmt.Errorf("write output: %w", err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return stats, fmt.Errorf("sync output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return stats, fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return stats, fmt.Errorf("finalize %s: %w", outPath, err)
	}
	tmpPath = ""

	if p.Logger != nil {
		p.Logger.Printf("%s: %d lines (%d malformed, %d unresolved chars), format %s",
			inPath, stats.LinesProcessed, stats.LinesMalformed, stats.CharsUnresolved, format)
	}
	return stats, nil
}

// processLine turns one raw input line into its output line, updating stats
// and flagging review-worthy conditions.
func (p *Processor) processLine(ctx context.Context, annotator *annotate.Annotator, file string, lineNo int, line string, format dictline.Format, stats *Stats) string {
	stats.LinesProcessed++

	entry := dictline.Classify(line, format)
	switch entry.Kind {
	case dictline.KindHeader, dictline.KindComment:
		return entry.Raw
	case dictline.KindMalformed:
		stats.LinesMalformed++
		p.flag(ctx, file, lineNo, ReasonMalformed, line)
		return entry.Raw
	}

	core, _ := p.Splitter.Split(entry.Word)
	if !dictline.HasHan(core) {
		return entry.Raw
	}

	syllables, unresolved := annotator.Annotate([]rune(core))
	if unresolved > 0 {
		stats.CharsUnresolved += unresolved
		p.flag(ctx, file, lineNo, ReasonUnresolved, line)
	}

	return dictline.Reassemble(entry, strings.Join(syllables, " "), format)
}

func (p *Processor) flag(ctx context.Context, file string, lineNo int, reason, content string) {
	if p.Review == nil {
		return
	}
	if err := p.Review.FlagLine(ctx, file, lineNo, reason, content); err != nil && p.Logger != nil {
		p.Logger.Printf("flag %s:%d: %v", file, lineNo, err)
	}
}

// ProcessFiles annotates a set of files concurrently. A failing file never
// stops the others; all failures are joined into the returned error.
func (p *Processor) ProcessFiles(ctx context.Context, jobs []FileJob) (Stats, error) {
	workers := p.Workers
	if workers <= 0 {
		workers = 1
	}

	pool := NewWorkerPool(workers, len(jobs))
	pool.Start(ctx)
	defer pool.Close()

	var (
		mu    sync.Mutex
		total Stats
		errs  []error
		done  int
	)

	for _, job := range jobs {
		job := job
		err := pool.Submit(ctx, func(ctx context.Context) {
			stats, err := p.ProcessFile(ctx, job.In, job.Out)
			mu.Lock()
			defer mu.Unlock()
			total.Add(stats)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", job.In, err))
			}
			done++
			if p.OnProgress != nil {
				p.OnProgress(job.In, done, len(jobs))
			}
		})
		if err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", job.In, err))
			mu.Unlock()
			break
		}
	}

	pool.Close()

	mu.Lock()
	defer mu.Unlock()
	return total, errors.Join(errs...)
}
