package scrub

import (
	"context"
	"fmt"
)

// Warning records a non-fatal degradation in a pipeline step, typically a
// per-column conversion failure.
type Warning struct {
	Step    string
	Column  string
	Message string
}

func (w Warning) String() string {
	if w.Column == "" {
		return fmt.Sprintf("%s: %s", w.Step, w.Message)
	}
	return fmt.Sprintf("%s: column %s: %s", w.Step, w.Column, w.Message)
}

// Step is a single transformation over a Table. Steps never mutate their
// input; a no-op step may return it unchanged.
type Step interface {
	Name() string
	Apply(ctx context.Context, t *Table) (*Table, []Warning, error)
}

// Pipeline composes an ordered sequence of Steps.
type Pipeline struct {
	steps []Step
}

func NewPipeline() *Pipeline { return &Pipeline{} }

func (p *Pipeline) Add(s Step) *Pipeline {
	p.steps = append(p.steps, s)
	return p
}

// Run applies every step in order, collecting warnings. A step error aborts
// the run; warnings never do.
func (p *Pipeline) Run(ctx context.Context, t *Table) (*Table, []Warning, error) {
	cur := t
	var warns []Warning
	for _, s := range p.steps {
		out, w, err := s.Apply(ctx, cur)
		if err != nil {
			return nil, warns, fmt.Errorf("%s: %w", s.Name(), err)
		}
		warns = append(warns, w...)
		cur = out
	}
	return cur, warns, nil
}
