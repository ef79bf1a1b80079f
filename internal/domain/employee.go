package domain

// Field employee who works jobs in exactly one service category.
// HomeAddress is the departure point for the first job of a day.
type Employee struct {
	EmployeeID  int
	Name        string
	HomeAddress string
	CategoryID  int
}
