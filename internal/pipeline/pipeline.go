// Package pipeline owns a dataset and walks it through the cleaning stages:
// mixed-type repair, sentinel normalization, completeness reduction, feature
// engineering and imputation. Each stage runs at most once; invoking a stage
// whose predecessor has not completed returns ErrStageOrder, and invoking a
// completed stage again is a no-op.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"segprep/internal/frame"
	"segprep/internal/metrics"
	"segprep/internal/probe"
	"segprep/internal/schema"
	"segprep/internal/transformer"
	"segprep/internal/transformer/builtin"
)

// Options configures a Pipeline. Start from DefaultOptions; a zero Reduce
// disables both reduction passes.
type Options struct {
	Job             string
	Schema          schema.Descriptor
	HighCardinality int
	Reduce          builtin.Reduce
	Impute          builtin.Impute
	Logger          *zap.Logger
}

// DefaultOptions returns the standard descriptor, both reduction passes and
// mean/mode imputation.
func DefaultOptions() Options {
	return Options{
		Job:             "segprep",
		Schema:          schema.Default(),
		HighCardinality: probe.DefaultHighCardinality,
		Reduce:          builtin.NewReduce(nil),
		Impute:          builtin.Impute{Numeric: builtin.Mean, Categorical: builtin.Mode},
	}
}

// Pipeline is the single owner of a dataset while it is being cleaned. It is
// not safe for concurrent use.
type Pipeline struct {
	ds    *frame.Dataset
	opt   Options
	log   *zap.Logger
	runID uuid.UUID
	done  map[Stage]bool
}

// New validates the descriptor against ds and returns a pipeline that owns
// ds from now on. In strict mode a missing column is ErrSchemaMismatch; in
// lenient mode missing columns are logged once here and skipped by every
// stage.
func New(ds *frame.Dataset, opt Options) (*Pipeline, error) {
	if ds == nil {
		return nil, fmt.Errorf("pipeline: nil dataset")
	}
	if err := opt.Schema.Validate(ds.Names()); err != nil {
		return nil, err
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	log = log.With(zap.String("job", opt.Job), zap.String("run_id", id.String()))
	if missing := opt.Schema.Missing(ds.Names()); len(missing) > 0 {
		log.Warn("descriptor columns absent from dataset", zap.Strings("columns", missing))
	}
	log.Info("pipeline created",
		zap.Int("rows", ds.Len()),
		zap.Int("columns", ds.Width()),
		zap.String("mode", string(opt.Schema.Mode)),
	)
	return &Pipeline{ds: ds, opt: opt, log: log, runID: id, done: make(map[Stage]bool)}, nil
}

// RunID identifies this pipeline instance in logs.
func (p *Pipeline) RunID() uuid.UUID { return p.runID }

// Dataset returns the owned dataset in its current state.
func (p *Pipeline) Dataset() *frame.Dataset { return p.ds }

// Completed lists the stages that have finished, in execution order.
func (p *Pipeline) Completed() []Stage {
	var out []Stage
	for _, s := range Stages {
		if p.done[s] {
			out = append(out, s)
		}
	}
	return out
}

// Classify reports the current column classes. It may be called at any
// point and always recomputes.
func (p *Pipeline) Classify(ctx context.Context) (probe.Classification, error) {
	var cls probe.Classification
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return cls, err
	}
	cls = probe.Classify(p.ds, probe.Options{HighCardinality: p.opt.HighCardinality, Logger: p.log})
	p.log.Info("columns classified",
		zap.Int("numeric", len(cls.Numeric)),
		zap.Int("categorical", len(cls.Categorical)),
		zap.Strings("binary", cls.Binary()),
		zap.Strings("high_cardinality", cls.HighCardinality),
	)
	metrics.RecordStep(p.opt.Job, StageClassify.String(), nil, time.Since(start))
	p.done[StageClassify] = true
	return cls, nil
}

// RepairMixedTypes turns marker strings into missing values and makes the
// mixed-type columns numeric.
func (p *Pipeline) RepairMixedTypes(ctx context.Context) error {
	return p.step(ctx, StageMixedTypes, builtin.NewMixedTypes(p.opt.Schema, p.log))
}

// NormalizeSentinels replaces sentinel codes with missing values.
func (p *Pipeline) NormalizeSentinels(ctx context.Context) error {
	return p.step(ctx, StageSentinels, builtin.NewSentinels(p.opt.Schema, p.log))
}

// Reduce drops sparse columns or rows.
func (p *Pipeline) Reduce(ctx context.Context) error {
	r := p.opt.Reduce
	r.Logger = p.log
	rows := p.ds.Len()
	if err := p.step(ctx, StageReduce, r); err != nil {
		return err
	}
	metrics.RecordRow(p.opt.Job, "reduce_dropped", int64(rows-p.ds.Len()))
	return nil
}

// Engineer derives features and drops the redundant source columns.
func (p *Pipeline) Engineer(ctx context.Context) error {
	return p.step(ctx, StageEngineer, builtin.Engineer{Schema: p.opt.Schema, Logger: p.log})
}

// Impute fills every remaining missing cell.
func (p *Pipeline) Impute(ctx context.Context) error {
	m := p.opt.Impute
	m.Logger = p.log
	missing := p.ds.TotalMissing()
	if err := p.step(ctx, StageImpute, m); err != nil {
		return err
	}
	metrics.RecordRow(p.opt.Job, "imputed_cells", int64(missing))
	return nil
}

// Run executes every pending stage in order and returns the dataset.
func (p *Pipeline) Run(ctx context.Context) (*frame.Dataset, error) {
	if _, err := p.Classify(ctx); err != nil {
		return nil, err
	}
	steps := []func(context.Context) error{
		p.RepairMixedTypes,
		p.NormalizeSentinels,
		p.Reduce,
		p.Engineer,
		p.Impute,
	}
	for _, fn := range steps {
		if err := fn(ctx); err != nil {
			return nil, err
		}
	}
	return p.ds, nil
}

// MissingBefore returns per-column missing counts on the current state,
// keeping only columns with more than one missing value.
func (p *Pipeline) MissingBefore() map[string]int {
	return significant(p.ds.MissingCounts())
}

// MissingAfter completes mixed-type repair and sentinel normalization if
// they are still pending, then reports like MissingBefore.
func (p *Pipeline) MissingAfter(ctx context.Context) (map[string]int, error) {
	if err := p.RepairMixedTypes(ctx); err != nil {
		return nil, err
	}
	if err := p.NormalizeSentinels(ctx); err != nil {
		return nil, err
	}
	return significant(p.ds.MissingCounts()), nil
}

func (p *Pipeline) step(ctx context.Context, s Stage, t transformer.Transformer) error {
	if p.done[s] {
		p.log.Debug("stage already completed", zap.Stringer("stage", s))
		return nil
	}
	if req := s.requires(); req != 0 && !p.done[req] {
		return fmt.Errorf("%w: %s requires %s", ErrStageOrder, s, req)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := t.Apply(ctx, p.ds)
	elapsed := time.Since(start)
	metrics.RecordStep(p.opt.Job, s.String(), err, elapsed)
	if err != nil {
		p.log.Error("stage failed", zap.Stringer("stage", s), zap.Error(err))
		return fmt.Errorf("%s: %w", s, err)
	}
	p.done[s] = true
	p.log.Info("stage completed",
		zap.Stringer("stage", s),
		zap.Int("rows", p.ds.Len()),
		zap.Int("columns", p.ds.Width()),
		zap.String("fingerprint", fmt.Sprintf("%016x", p.ds.Fingerprint())),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}

func significant(counts map[string]int) map[string]int {
	out := make(map[string]int)
	for k, v := range counts {
		if v > 1 {
			out[k] = v
		}
	}
	return out
}
