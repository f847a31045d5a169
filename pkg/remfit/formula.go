package remfit

import (
	"fmt"
	"strings"
	"unicode"

	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// Formula describes the response and feature columns of a model in
// the usual compact notation, e.g. `label ~ f1 + f2 - f3` or
// `label ~ .`.  The supported operators are `~ . : + -`; everything
// beyond that (term expansion, interaction semantics) is resolved by
// the engine.
type Formula struct {
	Response string
	Terms    []string
	Ops      []string
}

// ParseFormula validates and parses a formula string.  Invalid
// formulas are rejected locally before any remote call.
func ParseFormula(expr string) (Formula, error) {
	parts := strings.Split(expr, "~")
	if len(parts) != 2 {
		return Formula{}, fmt.Errorf("parseFormula %q: exactly one ~ required: %w", expr, engine.ErrInvalidConfig)
	}
	response := strings.TrimSpace(parts[0])
	if !validColumn(response) {
		return Formula{}, fmt.Errorf("parseFormula %q: bad response %q: %w", expr, response, engine.ErrInvalidConfig)
	}
	terms, ops, err := parseTerms(parts[1])
	if err != nil {
		return Formula{}, fmt.Errorf("parseFormula %q: %v", expr, err)
	}
	return Formula{Response: response, Terms: terms, Ops: ops}, nil
}

func parseTerms(rhs string) (terms, ops []string, err error) {
	rest := strings.TrimSpace(rhs)
	if rest == "" {
		return nil, nil, fmt.Errorf("empty term list: %w", engine.ErrInvalidConfig)
	}
	for _, field := range strings.FieldsFunc(rest, func(r rune) bool {
		return r == '+' || r == '-'
	}) {
		term, ok := normalizeTerm(field)
		if !ok {
			return nil, nil, fmt.Errorf("bad term %q: %w", strings.TrimSpace(field), engine.ErrInvalidConfig)
		}
		terms = append(terms, term)
	}
	for _, r := range rest {
		if r == '+' || r == '-' {
			ops = append(ops, string(r))
		}
	}
	if len(ops) != len(terms)-1 {
		return nil, nil, fmt.Errorf("bad term list %q: %w", rhs, engine.ErrInvalidConfig)
	}
	return terms, ops, nil
}

// normalizeTerm accepts `.`, a column name or a `:` interaction of
// column names and strips the whitespace around interaction parts.
func normalizeTerm(term string) (string, bool) {
	term = strings.TrimSpace(term)
	if term == "." {
		return term, true
	}
	cols := strings.Split(term, ":")
	for i, col := range cols {
		cols[i] = strings.TrimSpace(col)
		if !validColumn(cols[i]) {
			return "", false
		}
	}
	return strings.Join(cols, ":"), true
}

func validColumn(col string) bool {
	if col == "" {
		return false
	}
	for i, r := range col {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// String returns the canonical wire form of the formula.
func (f Formula) String() string {
	var b strings.Builder
	b.WriteString(f.Response)
	b.WriteString(" ~ ")
	for i, term := range f.Terms {
		if i > 0 {
			b.WriteString(" " + f.Ops[i-1] + " ")
		}
		b.WriteString(term)
	}
	return b.String()
}
