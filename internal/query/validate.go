package query

// Validate checks operator placement over a token sequence:
// an operator may not open or close the query, and two operators may not be
// adjacent. An empty sequence is valid (a no-op query).
func Validate(tokens []Token) error {
	if len(tokens) == 0 {
		return nil
	}

	if first := tokens[0]; first.IsOperator() {
		return syntaxErrorf("'%s' cannot be first", first.Text)
	}
	if last := tokens[len(tokens)-1]; last.IsOperator() {
		return syntaxErrorf("'%s' cannot be last", last.Text)
	}

	for i := 1; i < len(tokens); i++ {
		if tokens[i-1].IsOperator() && tokens[i].IsOperator() {
			return syntaxErrorf("'%s' and '%s' cannot be adjacent",
				tokens[i-1].Text, tokens[i].Text)
		}
	}
	return nil
}

// Parse tokenizes and validates a raw query line in one call. A rejected
// line returns a *SyntaxError and must not be evaluated.
func Parse(line string) ([]Token, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if err := Validate(tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}
