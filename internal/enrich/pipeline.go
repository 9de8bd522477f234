// Package enrich resolves the display name of every voting event in a voting csv and writes an
// enriched copy of it.
package enrich

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"riksvote/internal/components/assert"
	"riksvote/internal/components/chrono"
	"riksvote/internal/components/telemetry"
	"riksvote/internal/dataset"
	"riksvote/internal/scrapers/riksdagen"
	"time"

	"github.com/google/renameio/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_pipeline_run      = "pipeline.run"
	report_pipeline_fetch    = "pipeline.fetch"
	report_pipeline_cache    = "pipeline.cache"
	report_pipeline_ids      = "pipeline.ids"
	report_pipeline_resolved = "pipeline.resolved"
	report_pipeline_failed   = "pipeline.failed"
	report_pipeline_progress = "pipeline.progress"
	report_pipeline_eta      = "pipeline.eta-seconds"
)

// DefaultDelay is the wait between two fetches, it is the only thing keeping the pipeline from
// hammering data.riksdagen.se.
const DefaultDelay = time.Second

// progressInterval is how many ids are processed between two progress reports.
const progressInterval = 25

var tracer = otel.Tracer("riksvote/enrich")
var meter = otel.Meter("riksvote/enrich")
var resolvedCounter, _ = meter.Int64Counter("enrich.fetch.resolved")
var failedCounter, _ = meter.Int64Counter("enrich.fetch.failed")

// Fetcher resolves the display name of a single voting event.
type Fetcher interface {
	FetchVotingName(ctx context.Context, dokID string) (string, error)
}

type Options struct {
	Fetcher Fetcher
	Clock   chrono.API
	Tel     telemetry.API
	// Delay is waited after every fetch attempt, zero disables the wait.
	Delay time.Duration
	// Cache is optional.
	Cache NameCache
}

// Pipeline is the enrichment batch job. Fetches happen one at a time, in first-seen order of
// the voting events, with a fixed delay after each attempt.
type Pipeline struct {
	fetcher Fetcher
	clock   chrono.API
	tel     telemetry.API
	delay   time.Duration
	cache   NameCache
}

func NewPipeline(opts Options) (Pipeline, error) {
	assert.NotNil(opts.Fetcher)
	assert.NotNil(opts.Clock)
	assert.NotNil(opts.Tel)

	if opts.Delay < 0 {
		return Pipeline{}, fmt.Errorf("negative delay %s", opts.Delay)
	}

	return Pipeline{
		fetcher: opts.Fetcher,
		clock:   opts.Clock,
		tel:     telemetry.NewScopedAPI("enrich", opts.Tel),
		delay:   opts.Delay,
		cache:   opts.Cache,
	}, nil
}

// Run enriches the csv at input and writes the result to output. The output is written once,
// atomically, after every id has been processed. Failing to resolve a name is not an error,
// it is recorded in the report instead.
func (p Pipeline) Run(ctx context.Context, input, output string) (Report, error) {
	ctx, span := tracer.Start(ctx, "enrich.run")
	defer span.End()

	fail := func(err error) (Report, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.tel.ReportBroken(report_pipeline_run, err)
		return Report{Input: input, Output: output}, err
	}

	same, err := samePath(input, output)
	if err != nil {
		return fail(err)
	}
	if same {
		return fail(fmt.Errorf("%w: %s", ErrSameFile, output))
	}

	ds, err := dataset.LoadFile(input)
	if err != nil {
		return fail(err)
	}

	enriched, report, err := p.Enrich(ctx, ds)
	report.Input = input
	report.Output = output
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return report, err
	}

	contents, err := dataset.Encode(enriched)
	if err != nil {
		_, err = fail(&WriteError{Path: output, Err: fmt.Errorf("encode csv: %w", err)})
		return report, err
	}
	err = renameio.WriteFile(output, contents, 0644)
	if err != nil {
		_, err = fail(&WriteError{Path: output, Err: err})
		return report, err
	}

	span.SetAttributes(
		attribute.Int("rows", report.Rows),
		attribute.Int("ids", report.Total),
		attribute.Int("failed", len(report.Failed)),
	)
	return report, nil
}

// Enrich resolves the names of every voting event in ds and returns a copy of ds in which every
// row carries its event's name (empty when unresolved) and canonical url. Rows keep their order.
//
// The only error returned is the context's, when it is cancelled mid-run.
func (p Pipeline) Enrich(ctx context.Context, ds dataset.Dataset) (dataset.Dataset, Report, error) {
	start := p.clock.Now()
	ids := dataset.DistinctIDs(ds.Rows)

	report := Report{
		Total:     len(ids),
		Estimated: time.Duration(len(ids)) * p.delay,
	}
	p.tel.ReportCount(report_pipeline_ids, int64(len(ids)))
	p.tel.ReportCount(report_pipeline_eta, int64(report.Estimated.Seconds()))

	names := make(map[string]string, len(ids))
	for i, id := range ids {
		err := ctx.Err()
		if err != nil {
			report.Elapsed = p.clock.Now().Sub(start)
			return dataset.Dataset{}, report, err
		}

		if p.lookupCache(ctx, id, names) {
			report.Cached++
			p.reportProgress(i, len(ids))
			continue
		}

		name, err := p.fetch(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				report.Elapsed = p.clock.Now().Sub(start)
				return dataset.Dataset{}, report, ctx.Err()
			}
			report.Failed = append(report.Failed, Failure{DokID: id, Err: err})
		} else {
			names[id] = name
			report.Resolved++
			p.noteCache(ctx, id, name)
		}

		p.reportProgress(i, len(ids))

		err = p.clock.Sleep(ctx, p.delay)
		if err != nil {
			report.Elapsed = p.clock.Now().Sub(start)
			return dataset.Dataset{}, report, err
		}
	}

	enriched := Merge(ds, names)
	report.Rows = len(enriched.Rows)
	report.Elapsed = p.clock.Now().Sub(start)

	p.tel.ReportCount(report_pipeline_resolved, int64(report.Resolved+report.Cached))
	p.tel.ReportCount(report_pipeline_failed, int64(len(report.Failed)))

	return enriched, report, nil
}

// reportProgress reports the amount of processed ids and the remaining time every
// progressInterval ids and once the last id is done.
func (p Pipeline) reportProgress(i, total int) {
	done := i + 1
	if done%progressInterval != 0 && done != total {
		return
	}
	remaining := time.Duration(total-done) * p.delay
	p.tel.ReportCount(report_pipeline_progress, int64(done))
	p.tel.ReportCount(report_pipeline_eta, int64(remaining.Seconds()))
}

func (p Pipeline) fetch(ctx context.Context, id string) (string, error) {
	ctx, span := tracer.Start(ctx, "enrich.fetch")
	defer span.End()
	span.SetAttributes(attribute.String("dok_id", id))

	name, err := p.fetcher.FetchVotingName(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch voting name")
		failedCounter.Add(ctx, 1)
		p.tel.ReportWarning(report_pipeline_fetch, id, err)
		return "", err
	}

	resolvedCounter.Add(ctx, 1)
	p.tel.ReportDebug("resolved", id, name)
	return name, nil
}

func (p Pipeline) lookupCache(ctx context.Context, id string, names map[string]string) bool {
	if p.cache == nil {
		return false
	}
	name, ok, err := p.cache.Lookup(ctx, id)
	if err != nil {
		p.tel.ReportWarning(report_pipeline_cache, id, fmt.Errorf("lookup: %w", err))
		return false
	}
	if ok {
		names[id] = name
	}
	return ok
}

func (p Pipeline) noteCache(ctx context.Context, id, name string) {
	if p.cache == nil {
		return
	}
	err := p.cache.Note(ctx, id, name)
	if err != nil {
		p.tel.ReportWarning(report_pipeline_cache, id, fmt.Errorf("note: %w", err))
	}
}

// Merge returns a copy of ds where every row carries the name of its voting event from names
// (empty when absent) and the canonical url of the event.
func Merge(ds dataset.Dataset, names map[string]string) dataset.Dataset {
	rows := make([]dataset.VoteRow, len(ds.Rows))
	for i, row := range ds.Rows {
		row.VotingName = names[row.DokID]
		row.VotingURL = riksdagen.VotingURL(row.DokID)
		rows[i] = row
	}
	return dataset.Dataset{
		Header: ds.OutputHeader(),
		Rows:   rows,
	}
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	if absA == absB {
		return true, nil
	}

	// catches links and differently spelled paths to the same file
	statA, errA := os.Stat(absA)
	statB, errB := os.Stat(absB)
	if errA != nil || errB != nil {
		return false, nil
	}
	return os.SameFile(statA, statB), nil
}
