package command

import (
	"errors"
	"unicode"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
)

// Tokenize splits one command line into tokens. Whitespace separates tokens
// outside quotes; a single or double quote opens a token segment that runs
// to the matching close quote, preserving embedded whitespace. The other
// quote character is treated literally inside an open segment. There are no
// escape sequences. An unterminated quote is a parse error.
func Tokenize(line string) ([]string, error) {
	var tokens []string
	var current []rune
	var inToken bool
	var quote rune

	for _, ch := range line {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				current = append(current, ch)
			}
		case ch == '\'' || ch == '"':
			quote = ch
			// an opening quote starts a token even when empty ("")
			inToken = true
		case unicode.IsSpace(ch):
			if inToken {
				tokens = append(tokens, string(current))
				current = current[:0]
				inToken = false
			}
		default:
			current = append(current, ch)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, &gn.Error{
			Code: errcode.ParseError,
			Msg:  "Unterminated quoted string in command",
			Err:  errors.New("unterminated quoted string"),
		}
	}
	if inToken {
		tokens = append(tokens, string(current))
	}
	return tokens, nil
}
