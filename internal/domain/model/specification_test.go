package model_test

import (
	"testing"

	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func TestLeafSpecifications(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		spec          model.Specification
		expectedOp    model.SpecOperator
		expectedField string
		expectedValue any
	}{
		{
			name:          "eq spec",
			spec:          model.Eq("brand", "Samsung"),
			expectedOp:    model.SpecOpEq,
			expectedField: "brand",
			expectedValue: "Samsung",
		},
		{
			name:          "in spec",
			spec:          model.In("state", "available", "inactive"),
			expectedOp:    model.SpecOpIn,
			expectedField: "state",
			expectedValue: []any{"available", "inactive"},
		},
		{
			name:          "like spec",
			spec:          model.Like("name", "%Galaxy%"),
			expectedOp:    model.SpecOpLike,
			expectedField: "name",
			expectedValue: "%Galaxy%",
		},
		{
			name:          "ilike spec",
			spec:          model.ILike("name", "%galaxy%"),
			expectedOp:    model.SpecOpILike,
			expectedField: "name",
			expectedValue: "%galaxy%",
		},
		{
			name:          "between spec",
			spec:          model.Between("id", 1, 10),
			expectedOp:    model.SpecOpBetween,
			expectedField: "id",
			expectedValue: []any{1, 10},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.False(t, tc.spec.IsComposite())
			require.Nil(t, tc.spec.Children())
			require.Equal(t, tc.expectedOp, tc.spec.Operator())
			require.Equal(t, tc.expectedField, tc.spec.Field())
			require.Equal(t, tc.expectedValue, tc.spec.Value())
		})
	}
}

func TestCompositeSpecifications(t *testing.T) {
	t.Parallel()

	left := model.Eq("brand", "Samsung")
	right := model.ILike("name", "%Galaxy%")

	t.Run("must combines children with AND semantics", func(t *testing.T) {
		t.Parallel()

		spec := model.Must(left, right)

		require.True(t, spec.IsComposite())
		require.Equal(t, model.SpecOpMust, spec.Operator())
		require.Len(t, spec.Children(), 2)
	})

	t.Run("should combines children with OR semantics", func(t *testing.T) {
		t.Parallel()

		spec := model.Should(left, right)

		require.True(t, spec.IsComposite())
		require.Equal(t, model.SpecOpShould, spec.Operator())
		require.Len(t, spec.Children(), 2)
	})

	t.Run("must not wraps a single child", func(t *testing.T) {
		t.Parallel()

		spec := model.MustNot(left)

		require.True(t, spec.IsComposite())
		require.Equal(t, model.SpecOpMustNot, spec.Operator())
		require.Len(t, spec.Children(), 1)
	})

	t.Run("leaf combinators build composites", func(t *testing.T) {
		t.Parallel()

		spec := left.Must(right)
		require.Equal(t, model.SpecOpMust, spec.Operator())

		spec = left.Should(right)
		require.Equal(t, model.SpecOpShould, spec.Operator())

		spec = left.MustNot()
		require.Equal(t, model.SpecOpMustNot, spec.Operator())
	})

	t.Run("double negation unwraps", func(t *testing.T) {
		t.Parallel()

		spec := model.MustNot(left).MustNot()
		require.Equal(t, model.SpecOpEq, spec.Operator())
	})
}

func TestCriteriaBuilder(t *testing.T) {
	t.Parallel()

	t.Run("empty builder yields no spec", func(t *testing.T) {
		t.Parallel()

		criteria := model.NewCriteria().Build()

		require.False(t, criteria.HasSpec())
		require.False(t, criteria.HasSorting())
		require.False(t, criteria.IsPaginated())
	})

	t.Run("single condition stays a leaf", func(t *testing.T) {
		t.Parallel()

		criteria := model.NewCriteria().Where("brand", "Apple").Build()

		require.True(t, criteria.HasSpec())
		require.Equal(t, model.SpecOpEq, criteria.Spec().Operator())
	})

	t.Run("multiple conditions are wrapped in must", func(t *testing.T) {
		t.Parallel()

		criteria := model.NewCriteria().
			Where("brand", "Apple").
			WhereILike("name", "%mac%").
			Build()

		require.Equal(t, model.SpecOpMust, criteria.Spec().Operator())
		require.Len(t, criteria.Spec().Children(), 2)
	})

	t.Run("order by with dash prefix sorts descending", func(t *testing.T) {
		t.Parallel()

		criteria := model.NewCriteria().OrderBy("-name").Build()

		require.Len(t, criteria.Sorting(), 1)
		require.Equal(t, "name", criteria.Sorting()[0].Field)
		require.Equal(t, model.SortDesc, criteria.Sorting()[0].Direction)
	})

	t.Run("paginate records zero based page and offset", func(t *testing.T) {
		t.Parallel()

		criteria := model.NewCriteria().Paginate(0, 10).Build()

		require.True(t, criteria.IsPaginated())
		require.Equal(t, uint(0), criteria.Page())
		require.Equal(t, uint(0), criteria.Offset())

		criteria = model.NewCriteria().Paginate(2, 15).Build()

		require.Equal(t, uint(30), criteria.Offset())
	})

	t.Run("paginate with zero size falls back to default", func(t *testing.T) {
		t.Parallel()

		criteria := model.NewCriteria().Paginate(1, 0).Build()

		require.Equal(t, uint(10), criteria.Size())
	})
}
