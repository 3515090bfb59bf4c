// Package common defines shared constants and sentinel errors used across
// the newscheck client layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Generic flow-control errors.
	ErrorNotFound = errors.New("not found")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
)
