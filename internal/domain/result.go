package domain

import "time"

type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationPull   Operation = "pull"
)

// Result holds the outcome of a single sync operation.
type Result struct {
	Operation Operation
	PostName  string
	Title     string
	Document  string
	Published bool
	Duration  time.Duration
}
