package services

import "errors"

var (
	// ErrInvalidInput is returned for malformed or out-of-domain form values.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoMatchingRule is returned when a rule table has no row covering the value.
	ErrNoMatchingRule = errors.New("value outside supported range")
	// ErrInvalidRuleSet is returned when a rule set cannot back an evaluator.
	ErrInvalidRuleSet = errors.New("invalid rule set")
)
