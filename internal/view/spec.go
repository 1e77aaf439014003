// Package view implements the declarative read layer: named view
// specifications compiled into concrete queries with uniform visibility,
// sorting, and pagination rules.
package view

import (
	"fmt"
	"sort"
	"sync"
)

// FilterKind selects how a runtime filter value is interpreted.
type FilterKind int

const (
	// FilterID matches a single column against a positive integer id.
	FilterID FilterKind = iota
	// FilterString matches a single column against an exact (lowercased) string.
	FilterString
	// FilterText matches any of Columns against a substring, case-insensitive.
	FilterText
)

// FilterSpec declares a runtime filter a view accepts.
type FilterSpec struct {
	Name     string
	Column   string
	Columns  []string // FilterText only
	Kind     FilterKind
	Required bool
}

// DerivedKind is the aggregation applied to a joined set.
type DerivedKind int

const (
	// DerivedCount yields the size of the joined set.
	DerivedCount DerivedKind = iota
	// DerivedExists yields whether the caller id appears in the joined set's
	// MatchColumn. Anonymous callers always get false.
	DerivedExists
)

// DerivedField declares a computed output field. Fields are evaluated in
// declaration order, after all joins of the same level have run.
type DerivedField struct {
	Name        string
	Kind        DerivedKind
	Of          string // name of the join the field aggregates over
	MatchColumn string // DerivedExists only
}

// Visibility restricts which rows are readable or joinable.
type Visibility int

const (
	// VisibilityAll applies no row restriction.
	VisibilityAll Visibility = iota
	// VisibilityPublishedOrOwner hides unpublished rows from everyone except
	// the owning caller.
	VisibilityPublishedOrOwner
)

// Through routes a join across a membership table:
// parent.LocalKey -> through.ForeignKey, through.TargetKey -> target.ForeignKey.
type Through struct {
	Table      string
	ForeignKey string
	TargetKey  string
}

// JoinSpec declares a related-entity join. Joins run in declaration order as
// batched IN queries; they never alter the base predicate.
type JoinSpec struct {
	Table      string
	LocalKey   string // column on the parent row
	ForeignKey string // column on the joined table
	As         string
	Through    *Through
	Collapse   bool // keep only the first match; empty collapses to null
	Hidden     bool // feeds derived fields only, dropped from the output
	SoftDelete bool
	Visibility Visibility
	Project    []string
	Joins      []JoinSpec
	Derived    []DerivedField
}

// Cond is a static predicate conjunct baked into a view.
type Cond struct {
	SQL  string
	Args []any
}

// Spec is an immutable description of a named view: base entity, joins,
// derived fields, exposed fields, and sorting rules.
type Spec struct {
	Name       string
	Resource   string // human name used in NotFound messages
	Table      string
	SoftDelete bool
	Detail     bool // a required-id view: zero rows means the entity is absent
	Visibility Visibility
	Static     []Cond
	Filters    []FilterSpec
	Joins      []JoinSpec
	Derived    []DerivedField
	Project    []string
	SortFields map[string]string // exposed sort key -> column
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Spec{}
)

// Register adds a view specification to the process-wide registry. It panics
// on duplicate names or malformed specs: view definitions are wired at
// startup and a bad one is a programmer error, not a runtime condition.
func Register(s *Spec) {
	if err := s.validate(); err != nil {
		panic(fmt.Sprintf("view: invalid spec %q: %v", s.Name, err))
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[s.Name]; exists {
		panic(fmt.Sprintf("view: duplicate spec %q", s.Name))
	}
	registry[s.Name] = s
}

func lookup(name string) (*Spec, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := registry[name]
	return s, ok
}

// Registered returns the sorted names of all registered views.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Spec) validate() error {
	if s.Name == "" || s.Table == "" {
		return fmt.Errorf("name and table are required")
	}
	if err := validateRelations(s.Joins, s.Derived); err != nil {
		return err
	}
	for _, f := range s.Filters {
		if f.Name == "" {
			return fmt.Errorf("filter without a name")
		}
		if f.Kind == FilterText && len(f.Columns) == 0 {
			return fmt.Errorf("text filter %q needs columns", f.Name)
		}
		if f.Kind != FilterText && f.Column == "" {
			return fmt.Errorf("filter %q needs a column", f.Name)
		}
	}
	return nil
}

func validateRelations(joins []JoinSpec, derived []DerivedField) error {
	byName := map[string]*JoinSpec{}
	for i := range joins {
		j := &joins[i]
		if j.As == "" || j.Table == "" || j.LocalKey == "" || j.ForeignKey == "" {
			return fmt.Errorf("join %q: table, keys and output name are required", j.As)
		}
		if _, dup := byName[j.As]; dup {
			return fmt.Errorf("duplicate join output %q", j.As)
		}
		byName[j.As] = j
		if err := validateRelations(j.Joins, j.Derived); err != nil {
			return err
		}
	}
	for _, d := range derived {
		j, ok := byName[d.Of]
		if !ok {
			return fmt.Errorf("derived field %q references unknown join %q", d.Name, d.Of)
		}
		if d.Kind == DerivedExists && d.MatchColumn == "" {
			return fmt.Errorf("derived field %q needs a match column", d.Name)
		}
		if j.Collapse {
			return fmt.Errorf("derived field %q cannot aggregate collapsed join %q", d.Name, d.Of)
		}
	}
	return nil
}
