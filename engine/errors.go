/*
errors.go - Centralized error types for the screening engine

PURPOSE:
  The engine degrades gracefully by design: unknown codes, missing
  answers, and empty questionnaires yield not-eligible / zero-credit
  values, not errors. The only operations that can fail are catalog and
  questionnaire construction, which validate once at startup so request
  handling never has to.

USAGE:
  Callers can branch on sentinel errors:

    if errors.Is(err, engine.ErrInvalidCatalog) {
        log.Fatalf("bad category definitions: %v", err)
    }

SEE ALSO:
  - catalog.go: Where CatalogError is produced
  - factory/: Wraps these with JSON parse context
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidCatalog is returned when category definitions fail
	// construction-time validation.
	ErrInvalidCatalog = errors.New("invalid catalog definition")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// CatalogError describes a category definition that failed validation.
type CatalogError struct {
	Code    string // offending category code (may be empty)
	Field   string
	Message string
}

func (e *CatalogError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("catalog: %s", e.Message)
	}
	return fmt.Sprintf("catalog: category %q: %s", e.Code, e.Message)
}

func (e *CatalogError) Unwrap() error {
	return ErrInvalidCatalog
}
