package review

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// Recorder buffers flagged lines and writes them to the store in batched
// transactions. It satisfies the processor's Flagger interface and is safe
// for concurrent use by file workers.
type Recorder struct {
	db    *sql.DB
	runID int64

	mu     sync.Mutex
	buf    []FlaggedLine
	cap    int
	closed bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewRecorder creates a Recorder for one run. bufferSize is the batch size
// (<= 0 selects 64); flushInterval > 0 additionally flushes on a timer so a
// slow run still checkpoints its flags.
func NewRecorder(db *sql.DB, runID int64, bufferSize int, flushInterval time.Duration) *Recorder {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	r := &Recorder{
		db:    db,
		runID: runID,
		buf:   make([]FlaggedLine, 0, bufferSize),
		cap:   bufferSize,
		stop:  make(chan struct{}),
	}
	if flushInterval > 0 {
		r.ticker = time.NewTicker(flushInterval)
		r.wg.Add(1)
		go r.loop()
	}
	return r
}

// FlagLine buffers one flagged line, flushing the batch when it is full.
func (r *Recorder) FlagLine(ctx context.Context, file string, lineNo int, reason, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRecorderClosed
	}
	r.buf = append(r.buf, FlaggedLine{
		RunID:   r.runID,
		File:    file,
		LineNo:  lineNo,
		Reason:  reason,
		Content: content,
	})
	if len(r.buf) >= r.cap {
		return r.flushLocked()
	}
	return nil
}

// flushLocked writes the buffered flags in one transaction. r.mu is held.
func (r *Recorder) flushLocked() error {
	if len(r.buf) == 0 {
		return nil
	}
	batch := r.buf
	r.buf = make([]FlaggedLine, 0, r.cap)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin flag batch: %w", err)
	}
	defer tx.Rollback()

	for _, f := range batch {
		if err := InsertFlag(tx, f.RunID, f.File, f.LineNo, f.Reason, f.Content); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit flag batch (%d rows): %w", len(batch), err)
	}
	return nil
}

func (r *Recorder) loop() {
	defer r.wg.Done()
	for {
		select {
		case <-r.stop:
			return
		case <-r.ticker.C:
			r.mu.Lock()
			_ = r.flushLocked()
			r.mu.Unlock()
		}
	}
}

// Close flushes any remaining flags and stops the timer.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRecorderClosed
	}
	r.closed = true
	err := r.flushLocked()
	r.mu.Unlock()

	if r.ticker != nil {
		r.ticker.Stop()
	}
	close(r.stop)
	r.wg.Wait()
	return err
}

// ErrRecorderClosed is returned by operations on a closed Recorder.
var ErrRecorderClosed = &RecorderError{"recorder closed"}

// RecorderError is a typed error for recorder operations.
type RecorderError struct{ msg string }

func (e *RecorderError) Error() string { return e.msg }
