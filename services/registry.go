package services

import (
	"fmt"
	"sort"

	"feasibility/models"
)

// Registry holds one evaluator per rule set revision. It is filled once by
// NewRegistry and never changes afterwards.
type Registry struct {
	defaultRevision string
	evaluators      map[string]*Evaluator
	ruleSets        map[string]models.RuleSet
}

// NewRegistry builds an evaluator for every rule set. The first set is the
// default unless defaultRevision names another one.
func NewRegistry(defaultRevision string, sets ...models.RuleSet) (*Registry, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: no rule sets supplied", ErrInvalidRuleSet)
	}
	reg := &Registry{
		evaluators: make(map[string]*Evaluator, len(sets)),
		ruleSets:   make(map[string]models.RuleSet, len(sets)),
	}
	for _, rs := range sets {
		rs = rs.WithDefaults()
		if _, dup := reg.evaluators[rs.Revision]; dup {
			return nil, fmt.Errorf("%w: duplicate revision %q", ErrInvalidRuleSet, rs.Revision)
		}
		ev, err := NewEvaluator(rs)
		if err != nil {
			return nil, fmt.Errorf("revision %q: %w", rs.Revision, err)
		}
		reg.evaluators[rs.Revision] = ev
		reg.ruleSets[rs.Revision] = cloneRuleSet(rs)
	}

	if defaultRevision == "" {
		defaultRevision = sets[0].Revision
	}
	if _, ok := reg.evaluators[defaultRevision]; !ok {
		return nil, fmt.Errorf("%w: default revision %q not loaded", ErrInvalidRuleSet, defaultRevision)
	}
	reg.defaultRevision = defaultRevision
	return reg, nil
}

// Evaluator returns the evaluator for revision, or the default for "".
func (r *Registry) Evaluator(revision string) (*Evaluator, error) {
	if revision == "" {
		revision = r.defaultRevision
	}
	ev, ok := r.evaluators[revision]
	if !ok {
		return nil, fmt.Errorf("%w: unknown rule revision %q", ErrInvalidInput, revision)
	}
	return ev, nil
}

// RuleSet returns a copy of the tables behind revision.
func (r *Registry) RuleSet(revision string) (models.RuleSet, bool) {
	if revision == "" {
		revision = r.defaultRevision
	}
	rs, ok := r.ruleSets[revision]
	if !ok {
		return models.RuleSet{}, false
	}
	return cloneRuleSet(rs), true
}

func (r *Registry) DefaultRevision() string { return r.defaultRevision }

func (r *Registry) Revisions() []string {
	names := make([]string, 0, len(r.evaluators))
	for name := range r.evaluators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cloneRuleSet(rs models.RuleSet) models.RuleSet {
	rs.FSI = append([]models.FSIRule(nil), rs.FSI...)
	rs.Height = append([]models.HeightRule(nil), rs.Height...)
	rs.Setback = append([]models.SetbackRule(nil), rs.Setback...)
	rs.Parking = append([]models.ParkingRule(nil), rs.Parking...)
	return rs
}
