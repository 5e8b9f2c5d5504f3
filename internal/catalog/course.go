// Package catalog reads course records from a structured document or a
// PostgreSQL table and validates them before any graph is built.
package catalog

import (
	"errors"
	"strconv"
)

// ErrMalformedCatalog is returned when the input document cannot be decoded
// or a record is missing a required field.
var ErrMalformedCatalog = errors.New("malformed catalog")

// Course is one course record. Records are never mutated once loaded.
type Course struct {
	Code          string   `json:"code" yaml:"code"`       // subject + number, e.g. "MATH 110"
	Name          string   `json:"name" yaml:"name"`       // display title
	Subject       string   `json:"subject" yaml:"subject"` // department code, e.g. "MATH"
	Units         float64  `json:"units" yaml:"units"`
	Level         int      `json:"level" yaml:"level"`
	Prerequisites []string `json:"prerequisites" yaml:"prerequisites"` // raw course codes, may dangle
}

// DeriveLevel returns the hundreds digit of the first number in code,
// so "MATH 110" is level 1 and "CISC 499" is level 4. Codes without a
// number are level 0.
func DeriveLevel(code string) int {
	start := -1
	end := len(code)
	for i := 0; i < len(code); i++ {
		isDigit := code[i] >= '0' && code[i] <= '9'
		if start < 0 && isDigit {
			start = i
		} else if start >= 0 && !isDigit {
			end = i
			break
		}
	}
	if start < 0 {
		return 0
	}
	n, err := strconv.Atoi(code[start:end])
	if err != nil {
		return 0
	}
	return (n / 100) % 10
}
