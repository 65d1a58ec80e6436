package models

// Registry lists all models.
//
// Operations that affect every model, like migrations, iterate over it so
// that a new model cannot be forgotten.
var Registry = []any{
	&Envelope{},
	&Category{},
	&Budget{},
	&Income{},
	&Allocation{},
	&Expense{},
	&Subsidy{},
	&Carryover{},
	&MonthlySnapshot{},
}
