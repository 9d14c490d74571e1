package query

import "fmt"

// Condition renders one WHERE predicate. paramIndex is the number of
// parameters already bound, so generated names stay unique.
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

type eqCondition struct {
	column string
	value  interface{}
}

// Eq matches rows where column equals value.
func Eq(column string, value interface{}) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s = @%s", c.column, name), map[string]interface{}{name: c.value}
}
