package repository

// Operator is a comparison applied by a Condition.
type Operator string

const (
	OpEq     Operator = "eq"
	OpGte    Operator = "gte"
	OpLte    Operator = "lte"
	OpHasTag Operator = "has_tag" // JSON string list contains Value.
)

// Condition filters list and count queries on a single column.
// Column names come from application code, never from request input.
type Condition struct {
	Column string
	Op     Operator
	Value  any
}

// Eq matches rows where column equals value.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Op: OpEq, Value: value}
}

// Gte matches rows where column is greater than or equal to value.
func Gte(column string, value any) Condition {
	return Condition{Column: column, Op: OpGte, Value: value}
}

// Lte matches rows where column is less than or equal to value.
func Lte(column string, value any) Condition {
	return Condition{Column: column, Op: OpLte, Value: value}
}

// HasTag matches rows whose JSON list column contains tag.
func HasTag(column, tag string) Condition {
	return Condition{Column: column, Op: OpHasTag, Value: tag}
}

// ListQuery selects an ordered page of records.
type ListQuery struct {
	Conditions []Condition
	OrderBy    string
	Descending bool
	Skip       int
	Limit      int
}
