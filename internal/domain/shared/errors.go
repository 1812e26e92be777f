package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// ValidationError reports a rejected field during construction
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// MissingComponentError reports an agent lacking a collaborator component
// (position, cargo, market) that a behavior needs this tick. Behaviors map
// this to a FAILURE result rather than letting it propagate.
type MissingComponentError struct {
	*DomainError
	Entity    EntityID
	Component string
}

func NewMissingComponentError(entity EntityID, component string) *MissingComponentError {
	return &MissingComponentError{
		DomainError: &DomainError{Message: fmt.Sprintf("entity %s has no %s component", entity, component)},
		Entity:      entity,
		Component:   component,
	}
}

// InfeasibleTradeError reports a transfer that could not execute at current
// stock/funds/space, discovered at execution time rather than planning time
type InfeasibleTradeError struct {
	*DomainError
	Resource Resource
	Wanted   int
	Possible int
}

func NewInfeasibleTradeError(resource Resource, wanted, possible int) *InfeasibleTradeError {
	return &InfeasibleTradeError{
		DomainError: &DomainError{Message: fmt.Sprintf("cannot trade %d %s, only %d feasible", wanted, resource, possible)},
		Resource:    resource,
		Wanted:      wanted,
		Possible:    possible,
	}
}
