package entities

type AssignmentOutcome string

const (
	// AssignmentNoop заказ не найден или уже не в статусе pending.
	AssignmentNoop AssignmentOutcome = "noop"
	// AssignmentUnassigned свободных водителей нет, заказ остается pending.
	AssignmentUnassigned AssignmentOutcome = "unassigned"
	AssignmentAssigned   AssignmentOutcome = "assigned"
)

func (o AssignmentOutcome) String() string {
	return string(o)
}

type Assignment struct {
	OrderID  int64
	DriverID *int64
	Outcome  AssignmentOutcome
}
