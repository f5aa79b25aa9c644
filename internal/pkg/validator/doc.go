// Package validator validates tagged structs behind a single Validator
// interface, with go-playground/validator v10 as the concrete engine.
// Validation failures come back as structured field errors ready for an
// HTTP response.
package validator
