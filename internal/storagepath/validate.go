package storagepath

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Kind classifies why a path was rejected.
type Kind int

const (
	KindInvalidPlaceholder Kind = iota + 1
	KindTooLong
	KindTooShort
	KindInvalidEdge
	KindInvalidCharacter
)

func (k Kind) String() string {
	switch k {
	case KindInvalidPlaceholder:
		return "invalid placeholder"
	case KindTooLong:
		return "too long"
	case KindTooShort:
		return "too short"
	case KindInvalidEdge:
		return "invalid edge"
	case KindInvalidCharacter:
		return "invalid character"
	default:
		return "unknown"
	}
}

// ValidationError reports a rejected path or template. Placeholder is set only
// for KindInvalidPlaceholder and holds the offending token including braces.
type ValidationError struct {
	Kind        Kind
	Placeholder string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindInvalidPlaceholder:
		return fmt.Sprintf("invalid placeholder: %s", e.Placeholder)
	case KindTooLong:
		return fmt.Sprintf("path must be at most %d characters", MaxLength)
	case KindTooShort:
		return fmt.Sprintf("path must be at least %d characters", MinLength)
	case KindInvalidEdge:
		return "path cannot start or end with - or /"
	case KindInvalidCharacter:
		return "path may only contain lowercase letters, digits, - and /"
	default:
		return "invalid path"
	}
}

// Is matches any ValidationError of the same kind, so callers can write
// errors.Is(err, storagepath.ErrTooLong).
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidPlaceholder = &ValidationError{Kind: KindInvalidPlaceholder}
	ErrTooLong            = &ValidationError{Kind: KindTooLong}
	ErrTooShort           = &ValidationError{Kind: KindTooShort}
	ErrInvalidEdge        = &ValidationError{Kind: KindInvalidEdge}
	ErrInvalidCharacter   = &ValidationError{Kind: KindInvalidCharacter}
)

var placeholderPattern = regexp.MustCompile(`\{[\p{L}\p{N}_]+\}`)

// ValidateTemplate checks a user-authored path template. Placeholders are
// replaced by their stand-in names before the length, edge and charset rules
// run. The substituted form is returned; callers persist the original.
func ValidateTemplate(template string) (string, error) {
	for _, token := range placeholderPattern.FindAllString(template, -1) {
		if !IsPlaceholder(token) {
			return "", &ValidationError{Kind: KindInvalidPlaceholder, Placeholder: token}
		}
	}
	return checkShape(standIns.Replace(template))
}

// ValidateLiteral applies the length, edge and charset rules to a value that
// never carries placeholders, such as a document number.
func ValidateLiteral(value string) (string, error) {
	return checkShape(value)
}

func checkShape(value string) (string, error) {
	n := utf8.RuneCountInString(value)
	if n > MaxLength {
		return "", ErrTooLong
	}
	if n < MinLength {
		return "", ErrTooShort
	}
	if isEdge(value[0]) || isEdge(value[len(value)-1]) {
		return "", ErrInvalidEdge
	}
	for i := 0; i < len(value); i++ {
		if !isAllowed(value[i]) {
			return "", ErrInvalidCharacter
		}
	}
	return value, nil
}

func isEdge(c byte) bool {
	return c == '-' || c == '/'
}

func isAllowed(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '/'
}
