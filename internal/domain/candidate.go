package domain

// CandidateResult is the engine's answer for one feasible employee.
// It is response-shaping data only and is never persisted.
//
// DriveTimeMinutes is the inbound leg (departure point to the
// candidate address); RouteOrigin is where that leg starts, either the
// employee's latest earlier jobsite that day or their home address.
type CandidateResult struct {
	Employee         Employee
	DriveTimeMinutes int
	RouteOrigin      string
}
