// Package parsero orchestrates named step lists over a two-section state,
// either by direct interpretation or by compiling them for an external
// graph engine.
package parsero

import (
	"errors"
	"fmt"
	"strings"

	"github.com/parsero-dev/parsero/pkg/parsero/schema"
)

// Sentinel errors for step-list validation.
var (
	// ErrDuplicateName indicates two or more procedures share a name.
	ErrDuplicateName = errors.New("duplicate procedure name")

	// ErrChainInconsistent indicates the list contains a Check but some
	// Action lacks an explicit next step.
	ErrChainInconsistent = errors.New("action missing explicit next step")
)

// Sentinel errors for execution.
var (
	// ErrMaxIterations indicates the run exceeded the configured iteration ceiling.
	ErrMaxIterations = errors.New("exceeded maximum iterations")

	// ErrStateValidation indicates input or output failed schema validation.
	ErrStateValidation = errors.New("state validation failed")
)

// DuplicateNameError lists every procedure name that appears more than once
// in a step list. Raised before any procedure executes.
type DuplicateNameError struct {
	// Names are the offending names, in first-occurrence order.
	Names []string
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate procedure names: %s", strings.Join(e.Names, ", "))
}

// Unwrap returns ErrDuplicateName for errors.Is support.
func (e *DuplicateNameError) Unwrap() error {
	return ErrDuplicateName
}

// ChainError lists the Actions that rely on list-order fallthrough in a step
// list that contains at least one Check. Once branching exists, list order is
// no longer a reliable continuation, so every Action must declare its next
// step. Raised before any procedure executes.
type ChainError struct {
	// Steps are the Actions without an explicit next step.
	Steps []string
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	return fmt.Sprintf("step list contains checks but actions lack an explicit next step: %s",
		strings.Join(e.Steps, ", "))
}

// Unwrap returns ErrChainInconsistent for errors.Is support.
func (e *ChainError) Unwrap() error {
	return ErrChainInconsistent
}

// MaxIterationsError provides context when the iteration ceiling is hit.
// Partial state is discarded; the run surfaces only this error.
type MaxIterationsError struct {
	// Max is the configured ceiling.
	Max int
	// LastStep is the procedure that would have executed next.
	LastStep string
}

// Error implements the error interface.
func (e *MaxIterationsError) Error() string {
	return fmt.Sprintf("exceeded maximum iterations (%d) at step %s", e.Max, e.LastStep)
}

// Unwrap returns ErrMaxIterations for errors.Is support.
func (e *MaxIterationsError) Unwrap() error {
	return ErrMaxIterations
}

// ValidationError carries the validator's findings when the run's input or
// output does not match its declared schema.
type ValidationError struct {
	// Section is "input" or "output".
	Section string
	// Issues are the validator's field-path/message pairs.
	Issues []schema.Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%s state validation failed", e.Section)
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		if issue.Path == "" {
			parts[i] = issue.Message
			continue
		}
		parts[i] = issue.Path + ": " + issue.Message
	}
	return fmt.Sprintf("%s state validation failed: %s", e.Section, strings.Join(parts, "; "))
}

// Unwrap returns ErrStateValidation for errors.Is support.
func (e *ValidationError) Unwrap() error {
	return ErrStateValidation
}
