package planner

import (
	"errors"
	"fmt"
)

var (
	ErrUnreachable    = errors.New("goal unreachable")
	ErrBudgetExceeded = errors.New("planning budget exceeded")
)

// BudgetExceededError distinguishes "ran out of budget" from "searched the
// whole reachable graph": with budget left over, exhaustion proves the goal
// unreachable; without, reachability is simply unknown.
type BudgetExceededError struct {
	Expanded int
	Budget   int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("%s: expanded %d of %d nodes", ErrBudgetExceeded.Error(), e.Expanded, e.Budget)
}

func (e *BudgetExceededError) Unwrap() error {
	return ErrBudgetExceeded
}
