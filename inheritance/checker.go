package inheritance

import (
	"context"
	"fmt"
	"sort"

	"github.com/carbocation/pedmodels/pedigree"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Phased enables the haplotype check for compound pairs.
	Phased bool

	// Strict requires every relevant member to be called before a model is
	// asserted.
	Strict bool

	// XStrict chooses how Strict applies to the X-linked checks.
	XStrict XStrictPolicy

	// Workers bounds how many groups are evaluated at once. Zero or less
	// means no bound.
	Workers int
}

// Checker annotates the variants of one family.
type Checker struct {
	family *pedigree.Family
	opts   Options

	// withParents are the members with at least one recorded parent, in id
	// order.
	withParents []*pedigree.Individual
}

func NewChecker(fam *pedigree.Family, opts Options) *Checker {
	c := &Checker{family: fam, opts: opts}
	for _, ind := range fam.Members() {
		if ind.HasParents() {
			c.withParents = append(c.withParents, ind)
		}
	}

	return c
}

func (c *Checker) Options() Options {
	return c.opts
}

func (c *Checker) Family() *pedigree.Family {
	return c.family
}

// CheckBatch evaluates every group and then writes the results into the
// variants. Groups are evaluated concurrently. If any group fails, no
// variant in the batch is modified.
func (c *Checker) CheckBatch(ctx context.Context, b *Batch) error {
	if err := b.validate(); err != nil {
		return err
	}
	if c.opts.Phased {
		if err := c.ValidatePhase(b.Phase); err != nil {
			return err
		}
	}

	ids := make([]string, 0, len(b.Groups))
	for id := range b.Groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]*groupResult, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	if c.opts.Workers > 0 {
		g.SetLimit(c.opts.Workers)
	}
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r, err := c.evaluate(b.Groups[id], b.Phase)
			if err != nil {
				return fmt.Errorf("group %s: %w", id, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		r.commit()
	}

	return nil
}

// CheckGroup evaluates a single group and writes the results on success.
func (c *Checker) CheckGroup(g *Group, phase PhaseLookup) error {
	return c.CheckBatch(context.Background(), NewBatch(phase, g))
}

// ValidatePhase makes sure every affected member can be looked up, so that
// a phased run fails before any work is done rather than halfway through.
func (c *Checker) ValidatePhase(phase PhaseLookup) error {
	if phase == nil {
		return fmt.Errorf("%w: phased analysis requested without phase data", ErrMissingAnnotation)
	}

	for _, id := range c.family.Affected() {
		if !phase.Has(id) {
			return fmt.Errorf("%w: no phase index for affected individual %q", ErrMissingAnnotation, id)
		}
	}

	return nil
}

// groupResult holds the annotation computed for one group until the whole
// batch has succeeded.
type groupResult struct {
	group     *Group
	models    []Models
	compounds []map[string]int
}

func (r *groupResult) commit() {
	for i, v := range r.group.Variants {
		v.Models = r.models[i]
		v.Compounds = r.compounds[i]
	}
}

func (c *Checker) evaluate(g *Group, phase PhaseLookup) (*groupResult, error) {
	n := len(g.Variants)
	r := &groupResult{
		group:     g,
		models:    make([]Models, n),
		compounds: make([]map[string]int, n),
	}

	candidates := make([]int, 0, n)
	for i, v := range g.Variants {
		r.compounds[i] = make(map[string]int)
		r.models[i] = c.singleLocus(v)

		if CheckCompoundCandidate(v, c.family, c.opts.Strict) {
			candidates = append(candidates, i)
		}
	}

	// Pairs are only formed once every variant has been filtered.
	if len(candidates) < 2 {
		return r, nil
	}

	pairs, err := NewPairEnumerator(candidates)
	if err != nil {
		return nil, err
	}

	// A variant keeps AR_comp when at least one of its accepted pairs
	// survives refinement, and gets AR_comp_dn when any accepted pair allows
	// a de novo event. Neither depends on the order pairs are visited.
	survives := make([]bool, n)
	deNovo := make([]bool, n)

	for p, ok := pairs.Next(); ok; p, ok = pairs.Next() {
		v1, v2 := g.Variants[p.First], g.Variants[p.Second]

		accepted, err := CheckCompounds(v1, v2, c.family, phase, c.opts.Phased)
		if err != nil {
			return nil, fmt.Errorf("compound %s, %s: %w", v1, v2, err)
		}
		if !accepted {
			continue
		}

		r.compounds[p.First][v2.Key()] = 0
		r.compounds[p.Second][v1.Key()] = 0

		rev := c.refine(Compound, v1, v2)
		if rev.DeNovo.Has(ARcompDn) {
			deNovo[p.First], deNovo[p.Second] = true, true
		}
		if !rev.Retract.Has(ARcomp) {
			survives[p.First], survives[p.Second] = true, true
		}
	}

	for i := range g.Variants {
		if survives[i] {
			r.models[i] = r.models[i].With(ARcomp)
		}
		if deNovo[i] {
			r.models[i] = r.models[i].With(ARcompDn)
		}
	}

	return r, nil
}

// singleLocus runs the checks for the variant's chromosome and refines each
// model that held.
func (c *Checker) singleLocus(v *Variant) Models {
	var out Models

	apply := func(p Pattern, held bool) {
		if !held {
			return
		}
		inherited, _ := p.Flags()
		out = c.refine(p, v, nil).Apply(out.With(inherited))
	}

	if v.XLinked() {
		apply(XRecessive, CheckXRecessive(v, c.family, c.opts.Strict, c.opts.XStrict))
		apply(XDominant, CheckXDominant(v, c.family, c.opts.Strict, c.opts.XStrict))
		return out
	}

	apply(Dominant, CheckDominant(v, c.family, c.opts.Strict))
	apply(Recessive, CheckRecessive(v, c.family, c.opts.Strict))

	return out
}

// refine merges the revisions from every member with recorded parents.
func (c *Checker) refine(p Pattern, v1, v2 *Variant) Revision {
	var out Revision
	for _, ind := range c.withParents {
		out = out.Merge(CheckParents(p, ind, v1, v2, c.opts.Strict))
	}

	return out
}
