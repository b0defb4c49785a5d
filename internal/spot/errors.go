package spot

import "fmt"

type ErrorKind int

const (
	// ElementNotFound means an element the result cannot exist without is missing.
	ElementNotFound ErrorKind = iota
	// ParsingError means the page as a whole is not the expected shape.
	ParsingError
)

func (k ErrorKind) String() string {
	switch k {
	case ElementNotFound:
		return "element not found"
	case ParsingError:
		return "parsing error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ExtractionError is the only error type returned by the extractors.
type ExtractionError struct {
	Kind    ErrorKind
	Context string
}

func (e *ExtractionError) Error() string {
	if e.Context == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Context)
}

// Is matches any *ExtractionError of the same kind, so errors.Is(err, ErrParsing) works
// regardless of context.
func (e *ExtractionError) Is(target error) bool {
	t, ok := target.(*ExtractionError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrElementNotFound = &ExtractionError{Kind: ElementNotFound}
	ErrParsing         = &ExtractionError{Kind: ParsingError}
)

func elementNotFound(format string, args ...any) error {
	return &ExtractionError{Kind: ElementNotFound, Context: fmt.Sprintf(format, args...)}
}

func parsingError(format string, args ...any) error {
	return &ExtractionError{Kind: ParsingError, Context: fmt.Sprintf(format, args...)}
}
