// Package ident validates identifiers and escapes literals that have to be
// interpolated into SQL text. No user-supplied string reaches SQL unless it
// passed Validate or is bound as a query parameter; path literals, which
// cannot be bound inside COPY/read_csv clauses, go through EscapeLiteral.
package ident

import (
	"fmt"
	"strings"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
)

// MaxLen is the longest accepted identifier, in bytes.
const MaxLen = 64

// Validate checks that s is safe to use as a table or column name in SQL
// text. The grammar is conservative: first character alphabetic or
// underscore, the rest alphanumeric or underscore, at most MaxLen bytes.
// Case is preserved; the same string is usable verbatim after validation.
func Validate(s string) error {
	switch {
	case s == "":
		return invalidIdentifier(s, "identifier is empty")
	case len(s) > MaxLen:
		return invalidIdentifier(s,
			fmt.Sprintf("identifier is longer than %d characters", MaxLen))
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' ||
			(c >= 'a' && c <= 'z') ||
			(c >= 'A' && c <= 'Z') {
			continue
		}
		if c >= '0' && c <= '9' {
			if i == 0 {
				return invalidIdentifier(s, "identifier starts with a digit")
			}
			continue
		}
		return invalidIdentifier(s,
			fmt.Sprintf("identifier contains forbidden character %q", c))
	}
	return nil
}

// EscapeLiteral makes a string safe for embedding as a SQL single-quoted
// literal by doubling single quotes. It does not check that a path exists,
// only that the resulting literal cannot terminate early.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func invalidIdentifier(s, reason string) error {
	return &gn.Error{
		Code: errcode.InvalidIdentifierError,
		Msg:  "Invalid identifier <em>%s</em>: %s",
		Vars: []any{s, reason},
		Err:  fmt.Errorf("invalid identifier %q: %s", s, reason),
	}
}
