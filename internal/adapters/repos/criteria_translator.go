package repos

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
	"github.com/Suleiman-Moraes/device-api/pkg/logger"
)

// creationTime is exposed as a virtual text column so that free-text
// search and sorting can address the timestamp the same way the other
// fields are addressed.
const creationTimeText = "TO_CHAR(created_at, 'YYYY-MM-DD HH24:MI:SS')"

var columnMapping = map[string]string{
	"id":           "id",
	"name":         "name",
	"brand":        "brand",
	"state":        "state",
	"creationTime": "created_at",
	"updatedAt":    "updated_at",
}

// CriteriaTranslator renders a model.Criteria into squirrel clauses.
// Field values are always bound as query parameters; only whitelisted
// column names ever reach the query text.
type CriteriaTranslator struct {
	logger *logger.Logger
}

func NewCriteriaTranslator(log *logger.Logger) *CriteriaTranslator {
	return &CriteriaTranslator{logger: log}
}

func (t *CriteriaTranslator) ApplyToSelect(builder sq.SelectBuilder, criteria model.Criteria) sq.SelectBuilder {
	builder = t.ApplyConditionsOnly(builder, criteria)
	builder = t.applySorting(builder, criteria)
	builder = t.applyPagination(builder, criteria)

	return builder
}

// ApplyConditionsOnly applies only the predicate, leaving sorting and
// pagination out. Count queries use this to share the exact conditions
// of the page query.
func (t *CriteriaTranslator) ApplyConditionsOnly(builder sq.SelectBuilder, criteria model.Criteria) sq.SelectBuilder {
	if criteria.HasSpec() {
		builder = builder.Where(t.translateSpec(criteria.Spec()))
	}

	return builder
}

func (t *CriteriaTranslator) translateSpec(spec model.Specification) sq.Sqlizer {
	switch spec.Operator() {
	case model.SpecOpEq:
		return sq.Eq{t.col(spec.Field()): spec.Value()}

	case model.SpecOpIn:
		return sq.Eq{t.col(spec.Field()): spec.Value()}

	case model.SpecOpLike:
		return sq.Like{t.col(spec.Field()): spec.Value()}

	case model.SpecOpILike:
		if spec.Field() == "creationTime" {
			return sq.Expr(creationTimeText+" ILIKE ?", spec.Value())
		}

		return sq.ILike{t.col(spec.Field()): spec.Value()}

	case model.SpecOpBetween:
		values := spec.Value().([]any)
		col := t.col(spec.Field())

		return sq.And{sq.GtOrEq{col: values[0]}, sq.LtOrEq{col: values[1]}}

	case model.SpecOpMust:
		conditions := make(sq.And, 0, len(spec.Children()))
		for _, child := range spec.Children() {
			conditions = append(conditions, t.translateSpec(child))
		}

		return conditions

	case model.SpecOpShould:
		conditions := make(sq.Or, 0, len(spec.Children()))
		for _, child := range spec.Children() {
			conditions = append(conditions, t.translateSpec(child))
		}

		return conditions

	case model.SpecOpMustNot:
		children := spec.Children()
		if len(children) > 0 {
			return sq.Expr("NOT (?)", t.translateSpec(children[0]))
		}
	}

	return nil
}

func (t *CriteriaTranslator) col(field string) string {
	if col, ok := columnMapping[field]; ok {
		return col
	}

	if t.logger != nil {
		t.logger.Warn().
			Str("field", field).
			Str("fallback", "id").
			Msg("unknown field requested, falling back to default")
	}

	return "id"
}

func (t *CriteriaTranslator) applySorting(builder sq.SelectBuilder, c model.Criteria) sq.SelectBuilder {
	if !c.HasSorting() {
		return builder.OrderBy("id DESC")
	}

	for _, s := range c.Sorting() {
		builder = builder.OrderBy(fmt.Sprintf("%s %s", t.col(s.Field), s.Direction))
	}

	return builder
}

func (t *CriteriaTranslator) applyPagination(builder sq.SelectBuilder, c model.Criteria) sq.SelectBuilder {
	if !c.IsPaginated() {
		return builder
	}

	return builder.Limit(uint64(c.Size())).Offset(uint64(c.Offset()))
}
