package core

import "errors"

var (
	// ErrInvalidArgument is returned for malformed construction parameters
	// or call arguments. It is raised immediately, never deferred.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrContractViolation is fatal: a policy chose an arm outside [0, numArms).
	// The agent aborts the run and refuses to continue.
	ErrContractViolation = errors.New("policy contract violation")
)
