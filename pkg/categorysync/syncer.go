// Package categorysync synchronizes a cost category with the organization's
// OU hierarchy.
package categorysync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/operator-framework/ou-cost-category/pkg/costcategory"
	"github.com/operator-framework/ou-cost-category/pkg/organization"
)

const (
	OutputYAML = "yaml"
	OutputJSON = "json"
)

var errEmptyEffectiveStart = errors.New("effective start cannot be empty")

// Options configures a single synchronization run.
type Options struct {
	Name string
	// EffectiveStart is an ISO-8601 timestamp of the first day of a month.
	EffectiveStart string
	Depth          int
	DefaultValue   string
	Separator      string

	// DryRun skips the create or update call and writes the planned
	// request to Out instead.
	DryRun bool
	Output string
	Out    io.Writer
}

func (o *Options) validate() error {
	if o.Name == "" {
		return costcategory.ErrEmptyName
	}
	if o.EffectiveStart == "" {
		return errEmptyEffectiveStart
	}
	if o.Depth < 1 {
		return organization.ErrInvalidDepth
	}
	switch o.Output {
	case "", OutputYAML, OutputJSON:
	default:
		return fmt.Errorf("invalid output format %q, must be one of %s or %s", o.Output, OutputYAML, OutputJSON)
	}
	return nil
}

// Summary describes the outcome of a run.
type Summary struct {
	Accounts   int
	Labels     int
	Rules      int
	Truncated  int
	Broken     int
	Unexpected int

	Plan *costcategory.Plan
	// Result is nil for dry runs.
	Result *costcategory.Result
}

type Syncer struct {
	logger     log.FieldLogger
	builder    *organization.Builder
	reconciler *costcategory.Reconciler
}

func New(logger log.FieldLogger, orgAPI organization.API, ceAPI costcategory.API) *Syncer {
	return &Syncer{
		logger:     logger,
		builder:    organization.NewBuilder(logger, orgAPI),
		reconciler: costcategory.NewReconciler(logger, ceAPI),
	}
}

// Run resolves the organization structure, compiles it into rules and
// creates or replaces the cost category. The first error aborts the run.
func (s *Syncer) Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.DefaultValue == "" {
		opts.DefaultValue = costcategory.DefaultValue
	}
	if opts.Separator == "" {
		opts.Separator = organization.DefaultSeparator
	}
	s.builder.WithSeparator(opts.Separator)
	logger := s.logger.WithFields(log.Fields{
		"costCategory":   opts.Name,
		"effectiveStart": opts.EffectiveStart,
		"depth":          opts.Depth,
	})
	logger.Infof("main processing started")

	built, err := s.builder.Build(ctx, opts.Depth)
	if err != nil {
		return nil, err
	}

	rules := costcategory.CompileRules(logger, built.Structure)
	if built.Structure.Empty() {
		logger.Warnf("no accounts found for depth %d, proceeding with empty rules", opts.Depth)
	}
	logger.Infof("built %d rules", len(rules))

	summary := &Summary{
		Accounts:   built.Structure.AccountCount(),
		Labels:     len(built.Structure),
		Rules:      len(rules),
		Truncated:  built.Truncated(),
		Broken:     built.Broken(),
		Unexpected: built.Unexpected(),
	}

	def := costcategory.Definition{
		Name:           opts.Name,
		Rules:          rules,
		DefaultValue:   opts.DefaultValue,
		EffectiveStart: opts.EffectiveStart,
	}
	plan, err := s.reconciler.Plan(ctx, def)
	if err != nil {
		return nil, err
	}
	summary.Plan = plan

	if opts.DryRun {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		logger.Infof("dry run, not calling %s", plan.Decision.Action)
		if err := RenderPlan(out, plan, opts.Output); err != nil {
			return nil, err
		}
		return summary, nil
	}

	result, err := s.reconciler.Submit(ctx, plan)
	if err != nil {
		return nil, err
	}
	summary.Result = result
	logger.Infof("main processing finished successfully")
	return summary, nil
}
