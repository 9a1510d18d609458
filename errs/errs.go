// Package errs collects the named error kinds raised across the field,
// polynomial, sum-check and GKR packages. The original prover/verifier this
// module is modeled on (a Python sum-check/GKR reference) signals these same
// failures as distinct exception subclasses (SoundnessErrorException,
// ArithmeticError, ValueError); Go has no subclassing, so a Kind tag plays
// the same role and lets callers errors.As into the concrete error.
package errs

import "fmt"

// Kind enumerates the exhaustive error taxonomy.
type Kind int

const (
	// FieldMismatch: operations on polynomials with different field moduli.
	FieldMismatch Kind = iota
	// NonMultilinear: multiplying two MVLinears with overlapping variable sets.
	NonMultilinear
	// TermOutOfRange: a term key >= 2^n.
	TermOutOfRange
	// ShapeMismatch: bookkeeping table length mismatch, len(g) != L, wrong message length, etc.
	ShapeMismatch
	// ProtocolClosed: a message arrived after the verifier already terminated.
	ProtocolClosed
	// WrongPhase: a GKR message arrived while the verifier was in a different phase.
	WrongPhase
	// SoundnessErrorTooLarge: the requested configuration exceeds the caller's epsilon.
	SoundnessErrorTooLarge
	// NotConvinced: the sub-claim was queried before the verifier convinced.
	NotConvinced
	// MalformedProof: a serialized proof failed structural parsing.
	MalformedProof
)

func (k Kind) String() string {
	switch k {
	case FieldMismatch:
		return "FieldMismatch"
	case NonMultilinear:
		return "NonMultilinear"
	case TermOutOfRange:
		return "TermOutOfRange"
	case ShapeMismatch:
		return "ShapeMismatch"
	case ProtocolClosed:
		return "ProtocolClosed"
	case WrongPhase:
		return "WrongPhase"
	case SoundnessErrorTooLarge:
		return "SoundnessErrorTooLarge"
	case NotConvinced:
		return "NotConvinced"
	case MalformedProof:
		return "MalformedProof"
	default:
		return "Unknown"
	}
}

// Error carries the offending context alongside its Kind, so a caller can
// either match on Kind via errors.As or just read the message.
type Error struct {
	Kind    Kind
	Context string
}

func (e *Error) Error() string {
	if e.Context == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Context)
}

// New constructs an *Error of the given kind with a formatted context string.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Context: fmt.Sprintf(format, args...)}
}

// Is lets errors.Is(err, &errs.Error{Kind: errs.FieldMismatch}) work by
// comparing Kind, in addition to the usual errors.As(err, &concreteErr)
// pattern.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
