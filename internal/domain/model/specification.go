package model

type SpecOperator string

const (
	SpecOpEq      SpecOperator = "eq"
	SpecOpIn      SpecOperator = "in"
	SpecOpLike    SpecOperator = "like"
	SpecOpILike   SpecOperator = "ilike"
	SpecOpBetween SpecOperator = "between"
	SpecOpMust    SpecOperator = "must"
	SpecOpShould  SpecOperator = "should"
	SpecOpMustNot SpecOperator = "must_not"
)

// Specification is a SQL-agnostic predicate node. Leaves carry a field,
// an operator and a bound value; composites combine children with
// AND (must), OR (should) or NOT (must_not). Values are only ever bound
// through a parameterized query API, never rendered into query text.
type Specification interface {
	Must(other Specification) Specification
	Should(other Specification) Specification
	MustNot() Specification
	IsComposite() bool
	Children() []Specification
	Operator() SpecOperator
	Field() string
	Value() any
}
