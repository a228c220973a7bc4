package network

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type TokenKind int

const (
	TokenStation TokenKind = iota
	TokenTime
)

func (k TokenKind) String() string {
	switch k {
	case TokenStation:
		return "station"
	case TokenTime:
		return "time"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a lexed element of a route body. Text holds the unquoted
// station name for TokenStation, Value the travel time for TokenTime.
type Token struct {
	Kind  TokenKind
	Text  string
	Value int
}

var ErrUnterminatedStation = errors.New("unterminated quoted station name")

// Lex splits a route body into station and travel time tokens.
//
// Fields are whitespace separated. A field starting with a double quote opens
// a station name that runs until a field ending with a double quote; the
// fields in between are joined with single spaces and the surrounding quotes
// are stripped. Every other field must be an integer travel time.
func Lex(body string) ([]Token, error) {
	fields := strings.Fields(body)
	tokens := make([]Token, 0, len(fields))

	for i := 0; i < len(fields); i++ {
		field := fields[i]

		if strings.HasPrefix(field, `"`) {
			name := field
			for !closed(name) {
				i++
				if i >= len(fields) {
					return nil, fmt.Errorf("%w: %s", ErrUnterminatedStation, name)
				}
				name += " " + fields[i]
			}
			tokens = append(tokens, Token{Kind: TokenStation, Text: name[1 : len(name)-1]})
			continue
		}

		value, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid travel time %q: %w", field, err)
		}
		tokens = append(tokens, Token{Kind: TokenTime, Text: field, Value: value})
	}

	return tokens, nil
}

// closed reports whether an assembled name (always starting with a quote)
// also ends with its closing quote.
func closed(name string) bool {
	return len(name) >= 2 && strings.HasSuffix(name, `"`)
}
