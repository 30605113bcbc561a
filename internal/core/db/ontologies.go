package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/tree"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

var validate = validator.New()

// Sort keys accepted by ListOptions.SortBy.
const (
	SortByCreatedOn = "createdOn"
	SortByRoleType  = "roleType"
)

// ListOptions filters and orders List results.
type ListOptions struct {
	// Search matches role types case-insensitively as a substring.
	Search string
	// SortBy is SortByCreatedOn (default) or SortByRoleType.
	SortBy     string
	Descending bool
}

type ontologyRow struct {
	ID          string    `db:"ontology_id"`
	RoleType    string    `db:"role_type"`
	Description string    `db:"description"`
	CreatedOn   time.Time `db:"created_on"`
	CreatedBy   string    `db:"created_by"`
	Structure   []byte    `db:"structure"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r ontologyRow) ontology() (types.Ontology, error) {
	o := types.Ontology{
		ID:          r.ID,
		RoleType:    r.RoleType,
		Description: r.Description,
		CreatedOn:   r.CreatedOn.UTC(),
		CreatedBy:   r.CreatedBy,
	}
	if err := json.Unmarshal(r.Structure, &o.Structure); err != nil {
		return types.Ontology{}, fmt.Errorf("ontology %s: decode structure: %w", r.ID, err)
	}
	return o, nil
}

// Ontologies is the keyed ontology record store.
type Ontologies struct {
	q   *Queries
	now func() time.Time
}

// NewOntologies creates a store over loaded queries.
func NewOntologies(q *Queries) *Ontologies {
	return &Ontologies{q: q, now: time.Now}
}

// Save upserts o by id. A missing id or creation time is filled in on o;
// creation time and author of an existing record are never overwritten.
// The structure itself is stored as given: callers gate on validity.
func (s *Ontologies) Save(ctx context.Context, o *types.Ontology) error {
	if err := validateRecord(o); err != nil {
		return err
	}

	now := s.now().UTC()
	if o.ID == "" {
		o.ID = types.NewOntologyID()
	}
	if o.CreatedOn.IsZero() {
		o.CreatedOn = now
	}

	structure, err := json.Marshal(o.Structure)
	if err != nil {
		return fmt.Errorf("encode structure: %w", err)
	}

	_, err = s.q.Exec(ctx, "upsert-ontology",
		o.ID, o.RoleType, o.Description, o.CreatedOn.UTC(), o.CreatedBy, string(structure), now)
	if err != nil {
		return fmt.Errorf("save ontology %s: %w", o.ID, err)
	}
	return nil
}

// Get returns the record with id or types.ErrOntologyNotFound.
func (s *Ontologies) Get(ctx context.Context, id string) (*types.Ontology, error) {
	var row ontologyRow
	if err := s.q.Get(ctx, "get-ontology", &row, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", types.ErrOntologyNotFound, id)
		}
		return nil, fmt.Errorf("get ontology %s: %w", id, err)
	}

	o, err := row.ontology()
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns records matching opts.Search in the requested order.
// Ties keep creation order.
func (s *Ontologies) List(ctx context.Context, opts ListOptions) ([]types.Ontology, error) {
	var rows []ontologyRow
	if err := s.q.Select(ctx, "list-ontologies", &rows); err != nil {
		return nil, fmt.Errorf("list ontologies: %w", err)
	}

	// Matched here rather than in SQL: SQLite's lower() folds ASCII only.
	search := strings.ToLower(strings.TrimSpace(opts.Search))
	out := make([]types.Ontology, 0, len(rows))
	for _, row := range rows {
		if search != "" && !strings.Contains(strings.ToLower(row.RoleType), search) {
			continue
		}
		o, err := row.ontology()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	var less func(a, b types.Ontology) bool
	switch opts.SortBy {
	case SortByRoleType:
		less = func(a, b types.Ontology) bool {
			return strings.ToLower(a.RoleType) < strings.ToLower(b.RoleType)
		}
	case "", SortByCreatedOn:
		less = func(a, b types.Ontology) bool { return a.CreatedOn.Before(b.CreatedOn) }
	default:
		return nil, fmt.Errorf("unknown sort key %q (want %s or %s)", opts.SortBy, SortByRoleType, SortByCreatedOn)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if opts.Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})

	return out, nil
}

// Delete removes the record with id or returns types.ErrOntologyNotFound.
func (s *Ontologies) Delete(ctx context.Context, id string) error {
	res, err := s.q.Exec(ctx, "delete-ontology", id)
	if err != nil {
		return fmt.Errorf("delete ontology %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete ontology %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", types.ErrOntologyNotFound, id)
	}
	return nil
}

// Duplicate copies the record with id under a fresh id, creation time and
// an unused role type: "X", then "X (1)", "X (2)", ... The copy's root layer
// is renamed to match.
func (s *Ontologies) Duplicate(ctx context.Context, id, createdBy string) (*types.Ontology, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var taken []string
	base := src.RoleType
	if err := s.q.Select(ctx, "list-role-types-with-prefix", &taken, utf8.RuneCountInString(base), base); err != nil {
		return nil, fmt.Errorf("duplicate ontology %s: %w", id, err)
	}

	dup := *src
	dup.ID = types.NewOntologyID()
	dup.CreatedOn = s.now().UTC()
	dup.RoleType = uniqueName(base, taken)
	dup.Structure = tree.RenameNode(src.Structure, types.RootLayerID, dup.RoleType)
	if createdBy != "" {
		dup.CreatedBy = createdBy
	}

	if err := s.Save(ctx, &dup); err != nil {
		return nil, err
	}
	return &dup, nil
}

// uniqueName returns the first of base, "base (1)", "base (2)", ... that is
// not in taken.
func uniqueName(base string, taken []string) string {
	used := make(map[string]struct{}, len(taken))
	for _, name := range taken {
		used[name] = struct{}{}
	}
	candidate := base
	for n := 1; ; n++ {
		if _, ok := used[candidate]; !ok {
			return candidate
		}
		candidate = fmt.Sprintf("%s (%d)", base, n)
	}
}

func validateRecord(o *types.Ontology) error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("%w: %s", types.ErrInvalidRecord, strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
