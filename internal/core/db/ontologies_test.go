package db_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/db"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/db/dbtest"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

func record(role string) *types.Ontology {
	return &types.Ontology{
		RoleType:    role,
		Description: "screening for " + role,
		CreatedBy:   "Liza Fisher",
		Structure: types.Structure{
			&types.Layer{ID: types.RootLayerID, Name: role, Children: types.Structure{
				&types.Criteria{ID: "c1", Name: "Experience", Rules: []types.RuleGroup{{
					ID:        "g1",
					Condition: types.ConditionAnd,
					Statements: []types.RuleStatement{
						{ID: "s1", Property: "Experience", Operator: types.OpGreaterThan, Value: "5"},
						{ID: "s2", Property: "Skills", Operator: types.OpContains, Value: "Go"},
					},
				}}},
			}},
		},
	}
}

func TestOntologies_SaveGet(t *testing.T) {
	ctx := context.Background()
	_, q := dbtest.Open(t)
	store := db.NewOntologies(q)

	o := record("Backend Engineer")
	require.NoError(t, store.Save(ctx, o))
	require.NotEmpty(t, o.ID)
	require.False(t, o.CreatedOn.IsZero())

	got, err := store.Get(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, o.RoleType, got.RoleType)
	require.Equal(t, o.Description, got.Description)
	require.Equal(t, "Liza Fisher", got.CreatedBy)
	require.True(t, o.CreatedOn.Equal(got.CreatedOn), "CreatedOn %v != %v", o.CreatedOn, got.CreatedOn)

	root := got.Structure[0].(*types.Layer)
	crit := root.Children[0].(*types.Criteria)
	require.Len(t, crit.Rules, 1)
	require.Equal(t, types.OpGreaterThan, crit.Rules[0].Statements[0].Operator)

	// Upsert keeps the first author and creation time.
	created := got.CreatedOn
	got.Description = "updated"
	got.CreatedBy = "someone else"
	got.CreatedOn = created.Add(time.Hour)
	require.NoError(t, store.Save(ctx, got))

	again, err := store.Get(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, "updated", again.Description)
	require.Equal(t, "Liza Fisher", again.CreatedBy)
	require.True(t, created.Equal(again.CreatedOn))
}

func TestOntologies_SaveRejectsInvalidRecord(t *testing.T) {
	_, q := dbtest.Open(t)
	store := db.NewOntologies(q)

	err := store.Save(context.Background(), &types.Ontology{RoleType: ""})
	require.ErrorIs(t, err, types.ErrInvalidRecord)
	require.ErrorContains(t, err, "RoleType is required")

	err = store.Save(context.Background(), &types.Ontology{RoleType: strings.Repeat("x", 300)})
	require.ErrorIs(t, err, types.ErrInvalidRecord)
}

func TestOntologies_GetDeleteMissing(t *testing.T) {
	ctx := context.Background()
	_, q := dbtest.Open(t)
	store := db.NewOntologies(q)

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, types.ErrOntologyNotFound)
	require.ErrorIs(t, store.Delete(ctx, "missing"), types.ErrOntologyNotFound)

	o := record("Designer")
	require.NoError(t, store.Save(ctx, o))
	require.NoError(t, store.Delete(ctx, o.ID))
	_, err = store.Get(ctx, o.ID)
	require.ErrorIs(t, err, types.ErrOntologyNotFound)
}

func TestOntologies_List(t *testing.T) {
	ctx := context.Background()
	_, q := dbtest.Open(t)
	store := db.NewOntologies(q)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, role := range []string{"backend engineer", "Data Analyst", "Backend Lead", "100%_match"} {
		o := record(role)
		o.CreatedOn = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.Save(ctx, o))
	}

	roles := func(list []types.Ontology) []string {
		out := make([]string, 0, len(list))
		for _, o := range list {
			out = append(out, o.RoleType)
		}
		return out
	}

	all, err := store.List(ctx, db.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"backend engineer", "Data Analyst", "Backend Lead", "100%_match"}, roles(all))

	found, err := store.List(ctx, db.ListOptions{Search: "BACKEND"})
	require.NoError(t, err)
	require.Equal(t, []string{"backend engineer", "Backend Lead"}, roles(found))

	found, err = store.List(ctx, db.ListOptions{Search: "%_"})
	require.NoError(t, err)
	require.Equal(t, []string{"100%_match"}, roles(found))

	o := record("Écrivain Technique")
	o.CreatedOn = base.Add(10 * time.Hour)
	require.NoError(t, store.Save(ctx, o))
	found, err = store.List(ctx, db.ListOptions{Search: "éCRIVAIN"})
	require.NoError(t, err)
	require.Equal(t, []string{"Écrivain Technique"}, roles(found))
	require.NoError(t, store.Delete(ctx, o.ID))

	byRole, err := store.List(ctx, db.ListOptions{SortBy: db.SortByRoleType})
	require.NoError(t, err)
	require.Equal(t, []string{"100%_match", "backend engineer", "Backend Lead", "Data Analyst"}, roles(byRole))

	newest, err := store.List(ctx, db.ListOptions{SortBy: db.SortByCreatedOn, Descending: true})
	require.NoError(t, err)
	require.Equal(t, "100%_match", newest[0].RoleType)

	_, err = store.List(ctx, db.ListOptions{SortBy: "name"})
	require.Error(t, err)
}

func TestOntologies_Duplicate(t *testing.T) {
	ctx := context.Background()
	_, q := dbtest.Open(t)
	store := db.NewOntologies(q)

	src := record("Backend")
	require.NoError(t, store.Save(ctx, src))
	require.NoError(t, store.Save(ctx, record("Backend Lead")))

	want := []string{"Backend (1)", "Backend (2)"}
	for _, name := range want {
		dup, err := store.Duplicate(ctx, src.ID, "Dev Ops")
		require.NoError(t, err)
		require.NotEqual(t, src.ID, dup.ID)
		require.Equal(t, name, dup.RoleType)
		require.Equal(t, name, dup.Structure[0].NodeName())
		require.Equal(t, "Dev Ops", dup.CreatedBy)
	}

	orig, err := store.Get(ctx, src.ID)
	require.NoError(t, err)
	require.Equal(t, "Backend", orig.Structure[0].NodeName())

	_, err = store.Duplicate(ctx, "missing", "")
	require.ErrorIs(t, err, types.ErrOntologyNotFound)
}
