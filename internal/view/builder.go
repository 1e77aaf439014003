package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"vidtube/internal/models"

	"gorm.io/gorm"
)

// Row is one result row of a view: base columns merged with join outputs and
// derived fields.
type Row map[string]any

// Params are the runtime inputs of a single view invocation.
type Params struct {
	Filters  map[string]string
	SortBy   string
	SortDir  string
	Page     int
	PageSize int
}

// Runner executes a named view for a caller. Services depend on this
// interface so tests can substitute a stub.
type Runner interface {
	Build(ctx context.Context, name string, callerID uint, p Params) (*Page, error)
}

// Builder compiles a view specification plus caller identity and runtime
// parameters into queries against the store. It is read-only: side effects
// such as view-count increments belong to the callers, after the view call.
type Builder struct {
	db *gorm.DB
}

// NewBuilder creates a view builder over the given database handle.
func NewBuilder(db *gorm.DB) *Builder {
	return &Builder{db: db}
}

// Build resolves the named view and returns one page of rows.
//
// Filters are validated against the spec's allow-list, the visibility rule is
// conjoined to the base predicate, joins run in declaration order, derived
// fields are computed after joins, and the projection (minus the sensitive
// deny-list) is applied last. The total count uses the same predicate as the
// slice.
func (b *Builder) Build(ctx context.Context, name string, callerID uint, p Params) (*Page, error) {
	spec, ok := lookup(name)
	if !ok {
		return nil, models.NewConfigurationError(fmt.Sprintf("unknown view %q", name))
	}

	conds, err := buildConds(spec, callerID, p.Filters)
	if err != nil {
		return nil, err
	}
	order, err := resolveSort(spec, p.SortBy, p.SortDir)
	if err != nil {
		return nil, err
	}
	page, pageSize := Clamp(p.Page, p.PageSize)

	base := func() *gorm.DB {
		q := b.db.WithContext(ctx).Table(spec.Table)
		for _, c := range conds {
			q = q.Where(c.SQL, c.Args...)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if spec.Detail && total == 0 {
		return nil, models.NewNotFoundError(spec.Resource, detailID(spec, p.Filters))
	}

	var raw []map[string]any
	if err := base().
		Order(order).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&raw).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	rows := make([]Row, len(raw))
	for i, m := range raw {
		rows[i] = Row(m)
	}

	if err := b.applyRelations(ctx, rows, spec.Joins, spec.Derived, callerID); err != nil {
		return nil, err
	}
	for _, row := range rows {
		project(row, spec.Project)
		scrub(row)
	}

	return NewPage(rows, page, pageSize, total), nil
}

// buildConds assembles the base predicate: static conjuncts, soft-delete
// scope, the visibility rule, then validated runtime filters. Equality only;
// a malformed id or a filter the view does not declare is rejected.
func buildConds(spec *Spec, callerID uint, filters map[string]string) ([]Cond, error) {
	conds := append([]Cond{}, spec.Static...)
	if spec.SoftDelete {
		conds = append(conds, Cond{SQL: "deleted_at IS NULL"})
	}
	if sql, args, ok := visibilityCond(spec.Visibility, callerID); ok {
		conds = append(conds, Cond{SQL: sql, Args: args})
	}

	known := map[string]FilterSpec{}
	for _, f := range spec.Filters {
		known[f.Name] = f
	}
	for name := range filters {
		if _, ok := known[name]; !ok {
			return nil, models.NewValidationError(fmt.Sprintf("Unknown filter %q", name))
		}
	}

	for _, f := range spec.Filters {
		val := strings.TrimSpace(filters[f.Name])
		if val == "" {
			if f.Required {
				return nil, models.NewValidationError(fmt.Sprintf("Missing required filter %q", f.Name))
			}
			continue
		}
		switch f.Kind {
		case FilterID:
			id, err := strconv.ParseUint(val, 10, 64)
			if err != nil || id == 0 {
				return nil, models.NewValidationError(fmt.Sprintf("Invalid %s ID", f.Name))
			}
			conds = append(conds, Cond{SQL: f.Column + " = ?", Args: []any{id}})
		case FilterString:
			conds = append(conds, Cond{SQL: "LOWER(" + f.Column + ") = ?", Args: []any{strings.ToLower(val)}})
		case FilterText:
			like := "%" + strings.ToLower(val) + "%"
			parts := make([]string, len(f.Columns))
			args := make([]any, len(f.Columns))
			for i, col := range f.Columns {
				parts[i] = "LOWER(" + col + ") LIKE ?"
				args[i] = like
			}
			conds = append(conds, Cond{SQL: "(" + strings.Join(parts, " OR ") + ")", Args: args})
		}
	}
	return conds, nil
}

// resolveSort validates the requested sort against the view's allow-list and
// always appends an id tiebreak so pagination stays stable under equal keys.
// Unknown sort keys are rejected rather than silently ignored.
func resolveSort(spec *Spec, sortBy, sortDir string) (string, error) {
	dir := "DESC"
	switch strings.ToLower(sortDir) {
	case "", "desc":
	case "asc":
		dir = "ASC"
	default:
		return "", models.NewValidationError(fmt.Sprintf("Invalid sort direction %q", sortDir))
	}

	col := "created_at"
	if sortBy != "" {
		c, ok := spec.SortFields[sortBy]
		if !ok {
			return "", models.NewValidationError(fmt.Sprintf("Unknown sort key %q", sortBy))
		}
		col = c
	}
	return col + " " + dir + ", id ASC", nil
}

// applyRelations executes the joins of one nesting level and then computes
// the level's derived fields, in declaration order. Hidden joins feed derived
// fields without appearing in the output.
func (b *Builder) applyRelations(ctx context.Context, rows []Row, joins []JoinSpec, derived []DerivedField, callerID uint) error {
	if len(rows) == 0 || len(joins) == 0 {
		return nil
	}

	grouped := make(map[string]map[int64][]Row, len(joins))
	for i := range joins {
		byKey, err := b.runJoin(ctx, rows, &joins[i], callerID)
		if err != nil {
			return err
		}
		grouped[joins[i].As] = byKey
	}

	joinByName := make(map[string]*JoinSpec, len(joins))
	for i := range joins {
		joinByName[joins[i].As] = &joins[i]
	}

	for _, row := range rows {
		for _, d := range derived {
			j := joinByName[d.Of]
			set := grouped[d.Of][keyOf(row, j.LocalKey)]
			switch d.Kind {
			case DerivedCount:
				row[d.Name] = len(set)
			case DerivedExists:
				row[d.Name] = callerID != 0 && containsKey(set, d.MatchColumn, int64(callerID))
			}
		}
		for i := range joins {
			j := &joins[i]
			if j.Hidden {
				continue
			}
			set := grouped[j.As][keyOf(row, j.LocalKey)]
			if j.Collapse {
				if len(set) > 0 {
					row[j.As] = set[0]
				} else {
					row[j.As] = nil
				}
				continue
			}
			if set == nil {
				set = []Row{}
			}
			row[j.As] = set
		}
	}
	return nil
}

// runJoin fetches the joined rows for every parent in one batched query and
// groups them by the parent key. For Through joins the membership table is
// resolved first, then the targets.
func (b *Builder) runJoin(ctx context.Context, parents []Row, j *JoinSpec, callerID uint) (map[int64][]Row, error) {
	keys := parentKeys(parents, j.LocalKey)
	byKey := map[int64][]Row{}
	if len(keys) == 0 {
		return byKey, nil
	}

	if j.Through != nil {
		return b.runThroughJoin(ctx, keys, j, callerID)
	}

	rows, err := b.fetchJoinRows(ctx, j, j.ForeignKey, keys, callerID)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		k := keyOf(r, j.ForeignKey)
		byKey[k] = append(byKey[k], r)
	}
	projectAll(rows, j.Project)
	return byKey, nil
}

func (b *Builder) runThroughJoin(ctx context.Context, parentKeys []int64, j *JoinSpec, callerID uint) (map[int64][]Row, error) {
	var pairs []map[string]any
	if err := b.db.WithContext(ctx).
		Table(j.Through.Table).
		Where(j.Through.ForeignKey+" IN ?", parentKeys).
		Order("id ASC").
		Find(&pairs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	byKey := map[int64][]Row{}
	if len(pairs) == 0 {
		return byKey, nil
	}

	targetIDs := make([]int64, 0, len(pairs))
	seen := map[int64]struct{}{}
	for _, p := range pairs {
		id := keyOf(Row(p), j.Through.TargetKey)
		if id == 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		targetIDs = append(targetIDs, id)
	}

	rows, err := b.fetchJoinRows(ctx, j, j.ForeignKey, targetIDs, callerID)
	if err != nil {
		return nil, err
	}
	targets := make(map[int64]Row, len(rows))
	for _, r := range rows {
		targets[keyOf(r, j.ForeignKey)] = r
	}
	projectAll(rows, j.Project)

	for _, p := range pairs {
		parent := keyOf(Row(p), j.Through.ForeignKey)
		// Invisible or deleted targets drop out of the set entirely.
		if target, ok := targets[keyOf(Row(p), j.Through.TargetKey)]; ok {
			byKey[parent] = append(byKey[parent], target)
		}
	}
	return byKey, nil
}

func (b *Builder) fetchJoinRows(ctx context.Context, j *JoinSpec, keyCol string, keys []int64, callerID uint) ([]Row, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	q := b.db.WithContext(ctx).Table(j.Table).Where(keyCol+" IN ?", keys)
	if j.SoftDelete {
		q = q.Where("deleted_at IS NULL")
	}
	if sql, args, ok := visibilityCond(j.Visibility, callerID); ok {
		q = q.Where(sql, args...)
	}
	q = q.Order(keyCol + " ASC, id ASC")

	var raw []map[string]any
	if err := q.Find(&raw).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	rows := make([]Row, len(raw))
	for i, m := range raw {
		rows[i] = Row(m)
	}
	if err := b.applyRelations(ctx, rows, j.Joins, j.Derived, callerID); err != nil {
		return nil, err
	}
	return rows, nil
}

func parentKeys(parents []Row, col string) []int64 {
	keys := make([]int64, 0, len(parents))
	seen := map[int64]struct{}{}
	for _, p := range parents {
		k := keyOf(p, col)
		if k == 0 {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

func containsKey(rows []Row, col string, want int64) bool {
	for _, r := range rows {
		if keyOf(r, col) == want {
			return true
		}
	}
	return false
}

// keyOf normalizes a scanned id column to int64. Drivers disagree on the
// concrete integer type, sqlite and postgres included.
func keyOf(row Row, col string) int64 {
	switch v := row[col].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func project(row Row, allow []string) {
	if len(allow) == 0 {
		return
	}
	keep := make(map[string]struct{}, len(allow))
	for _, f := range allow {
		keep[f] = struct{}{}
	}
	for k := range row {
		if _, ok := keep[k]; !ok {
			delete(row, k)
		}
	}
}

func projectAll(rows []Row, allow []string) {
	for _, r := range rows {
		project(r, allow)
	}
}

func detailID(spec *Spec, filters map[string]string) string {
	for _, f := range spec.Filters {
		if f.Required {
			if v := filters[f.Name]; v != "" {
				return v
			}
		}
	}
	return "?"
}
