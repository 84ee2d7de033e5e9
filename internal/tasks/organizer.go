package tasks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tidyx/internal/fsops"
	"github.com/desertthunder/tidyx/internal/models"
	"github.com/desertthunder/tidyx/internal/shared"
	"golang.org/x/time/rate"
)

// maxMoveAttempts bounds retries when a destination is taken between the
// collision check and the move.
const maxMoveAttempts = 3

// State is the lifecycle position of an [Organizer].
type State int32

const (
	Idle State = iota
	Scanning
	Empty
	Processing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scanning:
		return "scanning"
	case Empty:
		return "empty"
	case Processing:
		return "processing"
	case Done:
		return "done"
	default:
		return ""
	}
}

// Summary is the completion signal delivered after the last progress event.
type Summary struct {
	Moved int `json:"moved"`
	Total int `json:"total"`
}

// RunResult contains all data from a single organize run.
type RunResult struct {
	RunID     string          `json:"run_id"`
	Path      string          `json:"path"`
	Results   []models.Result `json:"results"`
	Total     int             `json:"total"`   // Regular files found
	Moved     int             `json:"moved"`   // Files moved into a category
	Skipped   int             `json:"skipped"` // Files with no matching category
	Failed    int             `json:"failed"`  // Files left in place after an error
	Planned   int             `json:"planned"` // Files a dry run would move
	Bytes     int64           `json:"bytes"`   // Bytes moved
	Empty     bool            `json:"empty"`
	Canceled  bool            `json:"canceled"`
	DryRun    bool            `json:"dry_run"`
	StartedAt time.Time       `json:"started_at"`
	Duration  time.Duration   `json:"duration"`
}

// Summary returns the (moved, total) pair used for the terminal notification.
func (r *RunResult) Summary() Summary {
	return Summary{Moved: r.Moved, Total: r.Total}
}

// Failures returns the results whose outcome is [models.Failed].
func (r *RunResult) Failures() []models.Result {
	var failed []models.Result
	for _, res := range r.Results {
		if res.Outcome.Kind == models.Failed {
			failed = append(failed, res)
		}
	}
	return failed
}

func (r *RunResult) record(res models.Result) {
	r.Results = append(r.Results, res)
	switch res.Outcome.Kind {
	case models.Moved:
		r.Moved++
		r.Bytes += res.File.Size
	case models.Skipped:
		r.Skipped++
	case models.Failed:
		r.Failed++
	case models.Planned:
		r.Planned++
	}
}

// Engine defines the organize operation consumed by the shells.
type Engine interface {
	// Organize sorts the immediate files of path into category folders from table.
	Organize(ctx context.Context, path string, table models.Table, progress chan<- ProgressUpdate) (*RunResult, error)
}

// Options configures an [Organizer].
type Options struct {
	Pace   time.Duration    // Minimum interval between files; zero disables pacing
	DryRun bool             // Plan destinations without touching the filesystem
	Now    func() time.Time // Clock for the collision token; defaults to time.Now
}

// Organizer implements [Engine] on the local filesystem.
type Organizer struct {
	logger *log.Logger
	opts   Options
	state  atomic.Int32
}

var _ Engine = (*Organizer)(nil)

// NewOrganizer creates an Organizer. A nil logger falls back to [shared.NewLogger].
func NewOrganizer(logger *log.Logger, opts Options) *Organizer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Organizer{logger: logger, opts: opts}
}

// State returns the current lifecycle state.
func (o *Organizer) State() State {
	return State(o.state.Load())
}

func (o *Organizer) setState(s State) {
	o.state.Store(int32(s))
}

// sendProgress delivers update unless ctx is done first.
func (o *Organizer) sendProgress(ctx context.Context, progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	case <-ctx.Done():
	}
}

// trySendProgress delivers update only if the consumer is ready.
func (o *Organizer) trySendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Organize moves every immediate regular file of path whose extension appears in
// table into path/<category>.
//
// The only error returned is a fatal one (invalid table or unlistable directory),
// and in that case nothing has been touched. The caller owns progress and is
// responsible for closing it after Organize returns.
func (o *Organizer) Organize(ctx context.Context, path string, table models.Table, progress chan<- ProgressUpdate) (*RunResult, error) {
	start := o.opts.Now()
	runID := shared.GenerateID()
	logger := shared.WithLogger(o.logger, "run", runID[:8], "path", path)

	o.setState(Scanning)
	defer o.setState(Done)

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}
	if dups := table.Duplicates(); len(dups) > 0 {
		logger.Warn("extensions listed by more than one category, first match wins", "duplicates", dups)
	}

	files, err := fsops.ListFiles(path)
	if err != nil {
		logger.Error("cannot list directory", "error", err)
		return nil, err
	}

	result := &RunResult{
		RunID:     runID,
		Path:      path,
		Total:     len(files),
		DryRun:    o.opts.DryRun,
		StartedAt: start,
		Results:   make([]models.Result, 0, len(files)),
	}
	defer func() { result.Duration = o.opts.Now().Sub(start) }()

	if len(files) == 0 {
		o.setState(Empty)
		logger.Info("folder is already empty")
		result.Empty = true
		result.Results = append(result.Results, models.Result{Outcome: models.AlreadyEmpty()})
		o.sendProgress(ctx, progress, emptyUpdate())
		return result, nil
	}

	o.setState(Processing)
	logger.Info("organizing", "files", len(files), "dry_run", o.opts.DryRun)

	var limiter *rate.Limiter
	if o.opts.Pace > 0 {
		limiter = rate.NewLimiter(rate.Every(o.opts.Pace), 1)
	}

	namer := fsops.NewNamer(start)
	processed := 0
	for _, file := range files {
		if ctx.Err() != nil {
			result.Canceled = true
			break
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				result.Canceled = true
				break
			}
		}

		res := models.Result{File: file, Outcome: o.organizeFile(logger, path, table, file, namer)}
		result.record(res)
		processed++

		o.sendProgress(ctx, progress, movingUpdate(processed, len(files), res))
	}

	if result.Canceled {
		logger.Warn("organize canceled", "processed", processed, "moved", result.Moved)
		o.trySendProgress(progress, canceledUpdate(processed, result))
		return result, nil
	}

	logger.Info("organize complete", "moved", result.Moved, "skipped", result.Skipped, "failed", result.Failed)
	o.sendProgress(ctx, progress, completeUpdate(result))
	return result, nil
}

// organizeFile routes a single file and reports what happened. It never returns
// with the file lost: on failure the source is still at file.Path.
func (o *Organizer) organizeFile(logger *log.Logger, root string, table models.Table, file models.FileEntry, namer *fsops.Namer) models.Outcome {
	category, ok := table.Lookup(file.Ext)
	if !ok {
		logger.Debug("no category", "file", file.Name, "ext", file.Ext)
		return models.SkippedNoMatch()
	}

	target := filepath.Join(root, category)

	if o.opts.DryRun {
		name, err := namer.Free(target, file.Name)
		if err != nil {
			return o.failed(logger, file, category, err)
		}
		return models.PlannedFor(category, name)
	}

	if err := fsops.EnsureDir(target); err != nil {
		return o.failed(logger, file, category, err)
	}

	var lastErr error
	for attempt := 0; attempt < maxMoveAttempts; attempt++ {
		name, err := namer.Free(target, file.Name)
		if err != nil {
			return o.failed(logger, file, category, err)
		}

		err = fsops.Move(file.Path, filepath.Join(target, name))
		if err == nil {
			if name != file.Name {
				logger.Info("renamed on collision", "file", file.Name, "as", name, "category", category)
			} else {
				logger.Debug("moved", "file", file.Name, "category", category)
			}
			return models.MovedTo(category, name)
		}

		lastErr = err
		if !errors.Is(err, shared.ErrDestinationExists) {
			break
		}
		logger.Debug("destination taken, picking another name", "file", file.Name, "tried", name)
	}
	return o.failed(logger, file, category, lastErr)
}

func (o *Organizer) failed(logger *log.Logger, file models.FileEntry, category string, err error) models.Outcome {
	if !errors.Is(err, shared.ErrMoveFailed) {
		err = fmt.Errorf("%w: %s: %w", shared.ErrMoveFailed, file.Name, err)
	}
	logger.Warn("failed to move file", "file", file.Name, "category", category, "error", err)
	return models.FailedWith(category, err)
}

// ProgressFunc receives status text and the completed fraction in [0,1].
type ProgressFunc func(status string, fraction float64)

// Forward calls fn for every update received on progress until it is closed.
func Forward(progress <-chan ProgressUpdate, fn ProgressFunc) {
	for update := range progress {
		fn(update.Message, update.Fraction())
	}
}
