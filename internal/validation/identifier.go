package validation

import (
	"fmt"

	"github.com/google/uuid"
)

// identifierLength is the length of the canonical 8-4-4-4-12 UUID text form.
const identifierLength = 36

// IdentifierError reports a caller-supplied identifier that is not a
// well-formed UUID.
type IdentifierError struct {
	// Value is the rejected input, verbatim.
	Value string

	// Reason says what is wrong with it.
	Reason string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Value, e.Reason)
}

// ParseIdentifier parses raw into a UUID usable as a query parameter.
//
// Only the canonical hyphenated form is accepted (upper or lower case hex).
// uuid.Parse on its own would also take braces, the urn:uuid: prefix and the
// 32 character unhyphenated form; those are rejected here so that a parsed
// identifier always prints back as strings.ToLower(raw).
//
// The variant must be RFC 4122 and the version 1 through 8, which also
// rules out the nil UUID.
func ParseIdentifier(raw string) (uuid.UUID, error) {
	if len(raw) != identifierLength {
		return uuid.Nil, &IdentifierError{
			Value:  raw,
			Reason: fmt.Sprintf("expected %d characters, got %d", identifierLength, len(raw)),
		}
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return uuid.Nil, &IdentifierError{
					Value:  raw,
					Reason: fmt.Sprintf("expected '-' at position %d", i),
				}
			}
		default:
			if !isHex(c) {
				return uuid.Nil, &IdentifierError{
					Value:  raw,
					Reason: fmt.Sprintf("invalid character %q at position %d", c, i),
				}
			}
		}
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &IdentifierError{Value: raw, Reason: err.Error()}
	}

	if id.Variant() != uuid.RFC4122 {
		return uuid.Nil, &IdentifierError{
			Value:  raw,
			Reason: fmt.Sprintf("unsupported variant %s", id.Variant()),
		}
	}

	if v := id.Version(); v < 1 || v > 8 {
		return uuid.Nil, &IdentifierError{
			Value:  raw,
			Reason: fmt.Sprintf("unsupported version %d", v),
		}
	}

	return id, nil
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
