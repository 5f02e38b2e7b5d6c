// Package pipeline runs fetch, extract and persist for a batch of resources on
// a bounded worker pool and aggregates their outcomes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"spcuadros/internal/config"
	"spcuadros/internal/fetcher"
	"spcuadros/internal/logger"
	"spcuadros/internal/models"
	"spcuadros/internal/normalizer"
	"spcuadros/internal/persist"
	"spcuadros/internal/table"
	"spcuadros/internal/validator"
)

// ErrPanic wraps a value recovered from a worker.
var ErrPanic = errors.New("worker panicked")

type fetchFunc func(ctx context.Context, ref models.ResourceRef) (*fetcher.Result, error)

// Orchestrator owns the shared session and logger for every batch it runs.
type Orchestrator struct {
	opts       Options
	log        *logger.Logger
	fetch      fetchFunc
	normalizer *normalizer.Normalizer
	extractor  *table.Extractor
}

// New validates opts and wires the stages. The client is shared by all
// workers; a nil log discards output.
func New(client *resty.Client, log *logger.Logger, opts Options) (*Orchestrator, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid batch options: %w", err)
	}

	if log == nil {
		log = logger.Discard()
	}

	n, err := normalizer.New(opts.Strategy)
	if err != nil {
		return nil, err
	}

	f := fetcher.New(client, opts.Retry, validator.New(opts.Validation), log)

	return &Orchestrator{
		opts:       opts,
		log:        log,
		fetch:      f.Fetch,
		normalizer: n,
		extractor:  table.NewExtractor(opts.Table),
	}, nil
}

// batch is the state shared by the workers of one Run.
type batch struct {
	log       *logger.Logger
	persister *persist.Persister
	total     int

	mu       sync.Mutex
	outcomes []models.Outcome
	names    map[string]*nameSlot
}

// nameSlot serializes the writes of every resource that derives the same
// name. The highest index owns the files, as if the batch had run in order.
type nameSlot struct {
	mu    sync.Mutex
	owner int
	csv   bool
}

// Run processes refs with at most MaxWorkers resources in flight. It returns
// an error only for a missing output directory; everything that goes wrong
// with a single resource ends up in its Outcome.
func (o *Orchestrator) Run(ctx context.Context, refs []models.ResourceRef, rawDir, normalizedDir, label string) (models.BatchSummary, []models.Outcome, error) {
	if rawDir == "" || normalizedDir == "" {
		return models.BatchSummary{}, nil, config.ErrMissingOutputDirs
	}

	start := time.Now()
	batchID := uuid.NewString()
	log := o.log.With("context", label, "batch_id", batchID)

	b := &batch{
		log:       log,
		persister: persist.New(rawDir, normalizedDir, o.opts.Persist),
		total:     len(refs),
		outcomes:  make([]models.Outcome, 0, len(refs)),
		names:     make(map[string]*nameSlot, len(refs)),
	}

	log.Info("batch started", "resources", len(refs), "workers", o.opts.MaxWorkers, "strategy", o.opts.Strategy)

	var g errgroup.Group
	g.SetLimit(o.opts.MaxWorkers)

	for _, ref := range refs {
		g.Go(func() error {
			b.record(o.process(ctx, b, ref))
			return nil
		})
	}

	_ = g.Wait()

	slices.SortFunc(b.outcomes, func(a, c models.Outcome) int {
		return a.Ref.Index - c.Ref.Index
	})

	summary := models.BatchSummary{BatchID: batchID, Context: label}
	for i := range b.outcomes {
		b.settle(&b.outcomes[i])
		summary.Add(b.outcomes[i])
	}

	summary.Duration = time.Since(start)

	log.Info("batch complete",
		"attempted", summary.Attempted,
		"persisted", summary.Persisted,
		"skipped", summary.Skipped,
		"skipped_invalid", summary.SkippedInvalid,
		"skipped_error", summary.SkippedError,
		"tables_skipped", summary.TablesSkipped,
		"superseded", summary.Superseded,
		"tries", summary.Tries,
		"failed_tries", summary.FailedTries,
		"duration", summary.Duration,
	)

	return summary, b.outcomes, nil
}

func (b *batch) record(out models.Outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.outcomes = append(b.outcomes, out)
}

func (b *batch) slot(name string) *nameSlot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.names[name]
	if !ok {
		s = &nameSlot{}
		b.names[name] = s
	}

	return s
}

// settle marks a persisted outcome whose name ended up owned by another
// resource, whichever of the two finished first.
func (b *batch) settle(out *models.Outcome) {
	if out.Status != models.StatusPersisted {
		return
	}

	s, ok := b.names[out.Name]
	if !ok || s.owner == 0 || s.owner == out.Ref.Index {
		return
	}

	out.SupersededBy = s.owner
	out.RawPath, out.CSVPath = "", ""
	out.Rows, out.Cols = 0, 0
	out.TableSkipped = false
}

// process runs fetch, persist raw, normalize, extract and persist table for
// one resource. It never panics and never returns an error.
func (o *Orchestrator) process(ctx context.Context, b *batch, ref models.ResourceRef) (out models.Outcome) {
	start := time.Now()
	log := b.log.With("index", ref.Index, "total", b.total, "url", ref.URL)
	out = models.Outcome{Ref: ref}

	defer func() {
		if r := recover(); r != nil {
			out.Status = models.StatusSkippedError
			out.Err = fmt.Errorf("%w: %v", ErrPanic, r)
			log.Error("worker recovered from panic", "panic", r)
		}

		out.Duration = time.Since(start)
	}()

	res, err := o.fetch(ctx, ref)
	if res != nil {
		stats := fetcher.Stats(res.Attempts)
		out.Attempts, out.FailedTries = stats.Total, stats.Failed
	}

	if err != nil {
		out.Err = err
		out.Status = models.StatusSkippedError

		if errors.Is(err, fetcher.ErrInvalidPayload) {
			out.Status = models.StatusSkippedInvalid
		}

		log.Error("resource skipped", "status", out.Status, "attempts", out.Attempts, "error", err)

		return out
	}

	art := res.Artifact
	out.Name = b.persister.Name(art)

	slot := b.slot(out.Name)
	slot.mu.Lock()
	defer slot.mu.Unlock()

	switch {
	case slot.owner > ref.Index:
		out.Status = models.StatusPersisted
		log.Warn("name already written by a later resource, keeping its outputs", "name", out.Name, "other_index", slot.owner)

		return out
	case slot.owner != 0:
		log.Warn("name already written by an earlier resource, overwriting its outputs", "name", out.Name, "other_index", slot.owner)
	}

	out.RawPath, err = b.persister.WriteRaw(out.Name, art.Text)
	if err != nil {
		out.Status = models.StatusSkippedError
		out.Err = err
		log.Error("failed to write raw artifact", "name", out.Name, "error", err)

		return out
	}

	slot.owner = ref.Index
	out.Status = models.StatusPersisted

	tbl, err := o.extract(art.Text)
	if err != nil {
		out.TableSkipped = true
		log.Warn("normalized table skipped", "name", out.Name, "reason", err)

		if slot.csv {
			if err := b.persister.RemoveTable(out.Name); err != nil {
				log.Error("failed to remove stale normalized table", "name", out.Name, "error", err)
			}
			slot.csv = false
		}

		return out
	}

	out.Rows, out.Cols = tbl.NumRows(), tbl.NumCols()
	log.Debug("table extracted", "name", out.Name, "rows", out.Rows, "cols", out.Cols)

	out.CSVPath, err = b.persister.WriteTable(out.Name, tbl)
	if err != nil {
		out.Status = models.StatusSkippedError
		out.Err = err
		log.Error("failed to write normalized table", "name", out.Name, "error", err)

		return out
	}

	slot.csv = true

	log.Info("resource persisted", "name", out.Name, "attempts", out.Attempts, "rows", out.Rows, "cols", out.Cols)

	return out
}

func (o *Orchestrator) extract(text string) (*models.Table, error) {
	root, err := o.normalizer.Parse(text)
	if err != nil {
		return nil, err
	}

	return o.extractor.ExtractNode(root)
}

// Preview fetches one resource and returns its title-derived name and table
// without writing anything.
func (o *Orchestrator) Preview(ctx context.Context, ref models.ResourceRef) (string, *models.Table, error) {
	res, err := o.fetch(ctx, ref)
	if err != nil {
		return "", nil, err
	}

	name := persist.New(".", ".", o.opts.Persist).Name(res.Artifact)

	tbl, err := o.extract(res.Artifact.Text)
	if err != nil {
		return name, nil, err
	}

	return name, tbl, nil
}
