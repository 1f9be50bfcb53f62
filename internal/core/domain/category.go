package domain

// CategoryClass marks a category as a fixed or variable cost/income.
type CategoryClass string

const (
	ClassFixed    CategoryClass = "fixed"
	ClassVariable CategoryClass = "variable"
)

// Category is a taxonomy entry for classifying ledger entries.
type Category struct {
	Name  string        `json:"name"`
	Class CategoryClass `json:"class"`
	Tag   string        `json:"tag"`
}

// CategorySet holds the two category namespaces. The JSON keys mirror the
// legacy on-disk document and must not change.
type CategorySet struct {
	Payable    map[string]Category `json:"contas_pagar"`
	Receivable map[string]Category `json:"contas_receber"`
}

// ForKind returns the namespace for the given ledger kind.
func (c CategorySet) ForKind(kind LedgerKind) map[string]Category {
	if kind == KindPayable {
		return c.Payable
	}
	return c.Receivable
}

// Empty reports whether no category namespace has been seeded yet.
func (c CategorySet) Empty() bool {
	return len(c.Payable) == 0 && len(c.Receivable) == 0
}

// DefaultCategories returns the fixed seed taxonomy used when no categories
// file exists yet. Codes are referenced by entries and are never removed.
func DefaultCategories() CategorySet {
	return CategorySet{
		Payable: map[string]Category{
			"rent":        {Name: "Rent", Class: ClassFixed, Tag: "red"},
			"internet":    {Name: "Internet", Class: ClassFixed, Tag: "red"},
			"electricity": {Name: "Electricity", Class: ClassVariable, Tag: "yellow"},
			"water":       {Name: "Water", Class: ClassVariable, Tag: "yellow"},
			"supplier":    {Name: "Supplier", Class: ClassVariable, Tag: "orange"},
			"tax":         {Name: "Tax", Class: ClassFixed, Tag: "red"},
			"payroll":     {Name: "Payroll", Class: ClassFixed, Tag: "red"},
			"maintenance": {Name: "Maintenance", Class: ClassVariable, Tag: "orange"},
			"marketing":   {Name: "Marketing", Class: ClassVariable, Tag: "green"},
			"other":       {Name: "Other", Class: ClassVariable, Tag: "white"},
		},
		Receivable: map[string]Category{
			"sale":         {Name: "Sale", Class: ClassVariable, Tag: "green"},
			"service":      {Name: "Service", Class: ClassVariable, Tag: "green"},
			"commission":   {Name: "Commission", Class: ClassVariable, Tag: "green"},
			"rent_income":  {Name: "Rent Income", Class: ClassFixed, Tag: "green"},
			"investment":   {Name: "Investment", Class: ClassVariable, Tag: "green"},
			"other_income": {Name: "Other Income", Class: ClassVariable, Tag: "green"},
		},
	}
}
