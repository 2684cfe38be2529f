// Package errors provides standardized error handling patterns for streambuf.
//
// # Overview
//
// The errors package implements a two-class error classification system for
// the buffer layer: Invalid (bad input or configuration, reject the call) and
// Fatal (broken buffer invariants, stop processing).
//
// Short reads and short writes are deliberately not part of this taxonomy.
// Buffers communicate them purely through returned counts, so there is
// nothing to classify and nothing to retry at this layer.
//
// # Error Classification
//
//   - Invalid: zero or negative capacities, extent sizes or low-water marks,
//     metrics registration conflicts (reject at construction)
//   - Fatal: overcommit, negative counts, inconsistent segment bookkeeping
//     (defects; buffers panic rather than continue with corrupt state)
//
// The classification system integrates with Go's standard error handling,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Quick Start
//
// Use standard error variables for known conditions:
//
//	if capacity < 1 {
//	    return nil, errors.WrapInvalid(errors.ErrInvalidCapacity,
//	        "CircularBuffer", "NewCircular", "capacity validation")
//	}
//
// Check classification when handling construction errors:
//
//	buf, err := buffer.NewCircular[byte](0)
//	if errors.IsInvalid(err) {
//	    // caller bug: fix the configuration
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: <underlying error>"
//
// This gives operators a consistent, greppable shape for every error the
// module produces.
package errors
