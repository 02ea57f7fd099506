package condition

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokString
	tokNumber
	tokTrue
	tokFalse
	tokNull
	tokEq
	tokNeq
	tokLt
	tokLte
	tokGt
	tokGte
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

var operators = []struct {
	text string
	kind tokenKind
}{
	{"==", tokEq},
	{"!=", tokNeq},
	{"<=", tokLte},
	{">=", tokGte},
	{"&&", tokAnd},
	{"||", tokOr},
	{"<", tokLt},
	{">", tokGt},
	{"!", tokNot},
	{"(", tokLParen},
	{")", tokRParen},
}

func lex(src string) ([]token, error) {
	var tokens []token
	pos := 0
outer:
	for pos < len(src) {
		r, size := utf8.DecodeRuneInString(src[pos:])
		switch {
		case unicode.IsSpace(r):
			pos += size
			continue
		case r == '"' || r == '\'':
			text, n, err := lexString(src[pos:])
			if err != nil {
				return nil, &SyntaxError{Pos: pos, Message: err.Error()}
			}
			tokens = append(tokens, token{kind: tokString, text: text, pos: pos})
			pos += n
			continue
		case r == '-' || r == '+' || unicode.IsDigit(r):
			end := pos + size
			for end < len(src) && strings.ContainsRune("0123456789.eE", rune(src[end])) {
				end++
			}
			text := src[pos:end]
			if _, err := strconv.ParseFloat(text, 64); err != nil {
				return nil, &SyntaxError{Pos: pos, Message: "invalid number " + strconv.Quote(text)}
			}
			tokens = append(tokens, token{kind: tokNumber, text: text, pos: pos})
			pos = end
			continue
		case isNameRune(r):
			end := pos
			for end < len(src) {
				next, n := utf8.DecodeRuneInString(src[end:])
				if !isNameRune(next) && !unicode.IsDigit(next) && next != '.' && next != '-' {
					break
				}
				end += n
			}
			text := src[pos:end]
			kind := tokName
			switch text {
			case "true":
				kind = tokTrue
			case "false":
				kind = tokFalse
			case "null", "nil":
				kind = tokNull
			case "and":
				kind = tokAnd
			case "or":
				kind = tokOr
			case "not":
				kind = tokNot
			}
			tokens = append(tokens, token{kind: kind, text: text, pos: pos})
			pos = end
			continue
		}
		for _, op := range operators {
			if strings.HasPrefix(src[pos:], op.text) {
				tokens = append(tokens, token{kind: op.kind, text: op.text, pos: pos})
				pos += len(op.text)
				continue outer
			}
		}
		if r == '=' || r == '&' || r == '|' {
			return nil, &SyntaxError{Pos: pos, Message: "operator " + strconv.QuoteRune(r) + " must be doubled"}
		}
		return nil, &SyntaxError{Pos: pos, Message: "unexpected character " + strconv.QuoteRune(r)}
	}
	return append(tokens, token{kind: tokEOF, pos: len(src)}), nil
}

// lexString reads a quoted literal at the start of src and returns its value
// and byte length.
func lexString(src string) (string, int, error) {
	quote := src[0]
	var buf strings.Builder
	for i := 1; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			i++
			switch src[i] {
			case 'n':
				buf.WriteByte('\n')
			case 't':
				buf.WriteByte('\t')
			default:
				buf.WriteByte(src[i])
			}
		case c == quote:
			return buf.String(), i + 1, nil
		default:
			buf.WriteByte(c)
		}
	}
	return "", 0, errUnterminated
}

func isNameRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}
