package query

import "fmt"

type TokenType int

const (
	TokenTerm TokenType = iota
	TokenAnd
	TokenOr
)

func (t TokenType) String() string {
	switch t {
	case TokenTerm:
		return "TERM"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	default:
		return "UNKNOWN"
	}
}

// Token is one element of a query line: a normalized search term or one of
// the reserved operators "and" / "or".
type Token struct {
	Type TokenType
	Text string
}

func (t Token) String() string {
	return t.Text
}

// IsOperator reports whether the token is "and" or "or". Operators are not
// valid search terms.
func (t Token) IsOperator() bool {
	return t.Type == TokenAnd || t.Type == TokenOr
}

// SyntaxError reports a query line rejected by the tokenizer or by the
// grammar check. The message identifies the offending character or tokens.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Msg
}

func syntaxErrorf(format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}
