package repos_test

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/Suleiman-Moraes/device-api/internal/adapters/repos"
	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func buildSelect(t *testing.T, criteria model.Criteria) (string, []any) {
	t.Helper()

	translator := repos.NewCriteriaTranslator(nil)

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id").
		From("devices")

	query, args, err := translator.ApplyToSelect(builder, criteria).ToSql()
	require.NoError(t, err)

	return query, args
}

func TestCriteriaTranslator_ApplyToSelect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		criteria     model.Criteria
		expectedSQL  string
		expectedArgs []any
	}{
		{
			name:        "no predicate defaults to id descending",
			criteria:    model.NewCriteria().Build(),
			expectedSQL: `SELECT id FROM devices ORDER BY id DESC`,
		},
		{
			name:         "equality leaf",
			criteria:     model.NewCriteria().Where("brand", "Apple").Build(),
			expectedSQL:  `SELECT id FROM devices WHERE brand = $1 ORDER BY id DESC`,
			expectedArgs: []any{"Apple"},
		},
		{
			name:         "in leaf",
			criteria:     model.NewCriteria().WhereIn("state", "available", "inactive").Build(),
			expectedSQL:  `SELECT id FROM devices WHERE state IN ($1,$2) ORDER BY id DESC`,
			expectedArgs: []any{"available", "inactive"},
		},
		{
			name:         "like leaf",
			criteria:     model.NewCriteria().WhereLike("name", "%Pro%").Build(),
			expectedSQL:  `SELECT id FROM devices WHERE name LIKE $1 ORDER BY id DESC`,
			expectedArgs: []any{"%Pro%"},
		},
		{
			name:         "ilike leaf",
			criteria:     model.NewCriteria().WhereILike("name", "%pro%").Build(),
			expectedSQL:  `SELECT id FROM devices WHERE name ILIKE $1 ORDER BY id DESC`,
			expectedArgs: []any{"%pro%"},
		},
		{
			name:         "ilike on creation time renders the formatted timestamp",
			criteria:     model.NewCriteria().WhereILike("creationTime", "%2024%").Build(),
			expectedSQL:  `SELECT id FROM devices WHERE TO_CHAR(created_at, 'YYYY-MM-DD HH24:MI:SS') ILIKE $1 ORDER BY id DESC`,
			expectedArgs: []any{"%2024%"},
		},
		{
			name: "should group renders OR",
			criteria: model.NewCriteria().WhereShould(
				model.ILike("name", "%x%"),
				model.ILike("brand", "%x%"),
			).Build(),
			expectedSQL:  `SELECT id FROM devices WHERE (name ILIKE $1 OR brand ILIKE $2) ORDER BY id DESC`,
			expectedArgs: []any{"%x%", "%x%"},
		},
		{
			name: "multiple conditions AND together",
			criteria: model.NewCriteria().
				Where("brand", "Apple").
				WhereILike("name", "%Phone%").
				Build(),
			expectedSQL:  `SELECT id FROM devices WHERE (brand = $1 AND name ILIKE $2) ORDER BY id DESC`,
			expectedArgs: []any{"Apple", "%Phone%"},
		},
		{
			name:         "must not renders NOT",
			criteria:     model.NewCriteria().WhereMustNot(model.Eq("state", "inactive")).Build(),
			expectedSQL:  `SELECT id FROM devices WHERE NOT (state = $1) ORDER BY id DESC`,
			expectedArgs: []any{"inactive"},
		},
		{
			name:         "sorting maps field names to columns",
			criteria:     model.NewCriteria().OrderBy("-creationTime").Build(),
			expectedSQL:  `SELECT id FROM devices ORDER BY created_at DESC`,
			expectedArgs: nil,
		},
		{
			name:         "unknown sort field falls back to id",
			criteria:     model.NewCriteria().OrderBy("bogus").Build(),
			expectedSQL:  `SELECT id FROM devices ORDER BY id ASC`,
			expectedArgs: nil,
		},
		{
			name:         "pagination adds limit and offset",
			criteria:     model.NewCriteria().Paginate(2, 15).Build(),
			expectedSQL:  `SELECT id FROM devices ORDER BY id DESC LIMIT 15 OFFSET 30`,
			expectedArgs: nil,
		},
		{
			name:         "first page starts at offset zero",
			criteria:     model.NewCriteria().Paginate(0, 10).Build(),
			expectedSQL:  `SELECT id FROM devices ORDER BY id DESC LIMIT 10 OFFSET 0`,
			expectedArgs: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			query, args := buildSelect(t, tc.criteria)

			require.Equal(t, tc.expectedSQL, query)
			if tc.expectedArgs == nil {
				require.Empty(t, args)

				return
			}
			require.Equal(t, tc.expectedArgs, args)
		})
	}
}

func TestCriteriaTranslator_ApplyConditionsOnly(t *testing.T) {
	t.Parallel()

	translator := repos.NewCriteriaTranslator(nil)

	criteria := model.NewCriteria().
		Where("brand", "Apple").
		OrderBy("-name").
		Paginate(3, 10).
		Build()

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("COUNT(*)").
		From("devices")

	query, args, err := translator.ApplyConditionsOnly(builder, criteria).ToSql()
	require.NoError(t, err)
	require.Equal(t, `SELECT COUNT(*) FROM devices WHERE brand = $1`, query)
	require.Equal(t, []any{"Apple"}, args)
}
