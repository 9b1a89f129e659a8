package query

import "strings"

// Lexer scans a raw query line into tokens. Queries consist of ASCII letters
// and whitespace only; maximal letter runs become tokens. Accented and other
// non-ASCII letters are rejected like any other bad character, since the
// upstream indexer never emits terms containing them.
type Lexer struct {
	input []rune
	pos   int
}

// NewLexer creates a lexer over a raw query line.
func NewLexer(line string) *Lexer {
	return &Lexer{input: []rune(line)}
}

// Tokenize scans a raw query line into a normalized token sequence. An empty
// or all-whitespace line yields an empty sequence, which is valid. A line
// containing any character that is neither a letter nor whitespace is
// rejected whole, before any token is produced.
func Tokenize(line string) ([]Token, error) {
	return NewLexer(line).TokenizeAll()
}

// TokenizeAll returns all tokens from the input.
func (l *Lexer) TokenizeAll() ([]Token, error) {
	for _, r := range l.input {
		if !isLetter(r) && !isSpace(r) {
			return nil, syntaxErrorf("bad character '%c' in query", r)
		}
	}

	var tokens []Token
	for {
		tok, ok := l.next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// next extracts the next maximal run of letters, lowercased and classified.
func (l *Lexer) next() (Token, bool) {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return Token{}, false
	}

	start := l.pos
	for l.pos < len(l.input) && isLetter(l.input[l.pos]) {
		l.pos++
	}

	word := strings.ToLower(string(l.input[start:l.pos]))
	switch word {
	case "and":
		return Token{Type: TokenAnd, Text: word}, true
	case "or":
		return Token{Type: TokenOr, Text: word}, true
	}
	return Token{Type: TokenTerm, Text: word}, true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
