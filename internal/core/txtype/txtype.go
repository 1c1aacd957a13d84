// Package txtype holds the income/expense enumeration shared by categories,
// transactions and the reporting queries.
package txtype

type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// All lists the types in their canonical (ascending) order.
var All = []Type{Expense, Income}

func (t Type) Valid() bool {
	return t == Income || t == Expense
}

func (t Type) String() string {
	return string(t)
}

// Label is the pt-BR name used in exports.
func (t Type) Label() string {
	switch t {
	case Income:
		return "Receita"
	case Expense:
		return "Despesa"
	default:
		return string(t)
	}
}
