// lexer.go — line-by-line scanner for Mar source text.
//
// The lexer walks the source one line at a time; no token may span a line
// boundary. Strings and numbers that run into the end of a line simply stop
// there (an unterminated string takes the rest of its line). Keywords are not
// individually typed: every member of the fixed keyword set is emitted as a
// single KEYWORD token and the parser disambiguates on the token text.
package mar

import (
	"fmt"
	"strings"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	SOC // start-of-stream sentinel; the parser's pre-first token

	// Punctuation
	LPAREN   // "("
	RPAREN   // ")"
	LBRACKET // "["
	RBRACKET // "]"
	LBRACE   // "{"
	RBRACE   // "}"
	COLON    // ":"
	COMMA    // ","
	SEMI     // ";"
	DOT      // "."

	// Operators
	PLUS      // "+"
	MINUS     // "-"
	ASTERISK  // "*"
	DIVISION  // "/"
	MODULUS   // "%"
	CARET     // "^"
	ASSIGN    // "="
	EQ        // "=="
	NE        // "!="
	LT        // "<"
	LTE       // "<="
	GT        // ">"
	GTE       // ">="
	AND       // "&"
	OR        // "|"
	NEGATE    // "!"
	ARROW     // "=>"
	DEFAULT   // ".."
	INCREMENT // "++"
	DECREMENT // "--"

	// Literals & identifiers
	ID
	INTEGER
	FLOAT
	STRING
	KEYWORD
)

var tokenNames = map[TokenType]string{
	EOF:       "EOF",
	SOC:       "SOC",
	LPAREN:    "'('",
	RPAREN:    "')'",
	LBRACKET:  "'['",
	RBRACKET:  "']'",
	LBRACE:    "'{'",
	RBRACE:    "'}'",
	COLON:     "':'",
	COMMA:     "','",
	SEMI:      "';'",
	DOT:       "'.'",
	PLUS:      "'+'",
	MINUS:     "'-'",
	ASTERISK:  "'*'",
	DIVISION:  "'/'",
	MODULUS:   "'%'",
	CARET:     "'^'",
	ASSIGN:    "'='",
	EQ:        "'=='",
	NE:        "'!='",
	LT:        "'<'",
	LTE:       "'<='",
	GT:        "'>'",
	GTE:       "'>='",
	AND:       "'&'",
	OR:        "'|'",
	NEGATE:    "'!'",
	ARROW:     "'=>'",
	DEFAULT:   "'..'",
	INCREMENT: "'++'",
	DECREMENT: "'--'",
	ID:        "identifier",
	INTEGER:   "integer",
	FLOAT:     "float",
	STRING:    "string",
	KEYWORD:   "keyword",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical token. Text carries the raw lexeme for most kinds and
// the decoded content for STRING. Line is 1-based, Col is the 1-based column
// of the token's first character.
type Token struct {
	Type TokenType
	Text string
	Line int
	Col  int
}

// keywords is the fixed keyword set. Everything here lexes as KEYWORD; any
// other identifier-shaped run lexes as ID.
var keywords = map[string]struct{}{
	"let":      {},
	"fn":       {},
	"for":      {},
	"while":    {},
	"if":       {},
	"else":     {},
	"match":    {},
	"True":     {},
	"False":    {},
	"None":     {},
	"class":    {},
	"parent":   {},
	"rn":       {},
	"break":    {},
	"continue": {},
	"use":      {},
	"as":       {},
}

// Lexer scans a Mar source string into tokens.
type Lexer struct {
	src    string
	line   string // current line text
	lineNo int    // 1-based
	pos    int    // byte index into line
	tokens []Token
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}
func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\v' || b == '\f' }

func (l *Lexer) atEOL() bool { return l.pos >= len(l.line) }

func (l *Lexer) peek() (byte, bool) {
	if l.pos+1 >= len(l.line) {
		return 0, false
	}
	return l.line[l.pos+1], true
}

// add emits a fixed-width token starting at the current position and steps
// over it.
func (l *Lexer) add(tt TokenType, text string) {
	l.tokens = append(l.tokens, Token{Type: tt, Text: text, Line: l.lineNo, Col: l.pos + 1})
	l.pos += len(text)
}

// Scan tokenizes the entire source and returns tokens, EOF included.
func (l *Lexer) Scan() ([]Token, error) {
	for i, line := range strings.Split(l.src, "\n") {
		l.line = line
		l.lineNo = i + 1
		l.pos = 0
		if err := l.scanLine(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Text: "EOF", Line: l.lineNo, Col: len(l.line) + 1})
	return l.tokens, nil
}

func (l *Lexer) scanLine() error {
	for !l.atEOL() {
		ch := l.line[l.pos]
		switch {
		case isAlpha(ch):
			l.scanIdentifier()
		case isDigit(ch):
			l.scanNumber()
		case ch == '#':
			// comment runs to end of line
			l.pos = len(l.line)
		case ch == '\'' || ch == '"':
			l.scanString()
		case isSpace(ch):
			l.pos++
		default:
			if err := l.scanOperator(ch); err != nil {
				return err
			}
		}
	}
	return nil
}

// scanOperator handles punctuation and operators, with greedy two-character
// lookahead for ">=", "<=", "==", "=>", "..", "++", "--", "!=".
func (l *Lexer) scanOperator(ch byte) error {
	switch ch {
	case '(':
		l.add(LPAREN, "(")
	case ')':
		l.add(RPAREN, ")")
	case '[':
		l.add(LBRACKET, "[")
	case ']':
		l.add(RBRACKET, "]")
	case '{':
		l.add(LBRACE, "{")
	case '}':
		l.add(RBRACE, "}")
	case ':':
		l.add(COLON, ":")
	case ',':
		l.add(COMMA, ",")
	case ';':
		l.add(SEMI, ";")
	case '*':
		l.add(ASTERISK, "*")
	case '/':
		l.add(DIVISION, "/")
	case '%':
		l.add(MODULUS, "%")
	case '^':
		l.add(CARET, "^")
	case '&':
		l.add(AND, "&")
	case '|':
		l.add(OR, "|")
	case '>':
		if b, ok := l.peek(); ok && b == '=' {
			l.add(GTE, ">=")
		} else {
			l.add(GT, ">")
		}
	case '<':
		if b, ok := l.peek(); ok && b == '=' {
			l.add(LTE, "<=")
		} else {
			l.add(LT, "<")
		}
	case '.':
		if b, ok := l.peek(); ok && b == '.' {
			l.add(DEFAULT, "..")
		} else {
			l.add(DOT, ".")
		}
	case '+':
		if b, ok := l.peek(); ok && b == '+' {
			l.add(INCREMENT, "++")
		} else {
			l.add(PLUS, "+")
		}
	case '-':
		if b, ok := l.peek(); ok && b == '-' {
			l.add(DECREMENT, "--")
		} else {
			l.add(MINUS, "-")
		}
	case '=':
		if b, ok := l.peek(); ok && b == '=' {
			l.add(EQ, "==")
		} else if b, ok := l.peek(); ok && b == '>' {
			l.add(ARROW, "=>")
		} else {
			l.add(ASSIGN, "=")
		}
	case '!':
		if b, ok := l.peek(); ok && b == '=' {
			l.add(NE, "!=")
		} else {
			l.add(NEGATE, "!")
		}
	default:
		return &LexError{
			Line: l.lineNo,
			Col:  l.pos + 1,
			Msg:  fmt.Sprintf("unknown character %q", ch),
		}
	}
	return nil
}

// scanIdentifier consumes [A-Za-z_][A-Za-z0-9_]* and classifies it against
// the keyword set.
func (l *Lexer) scanIdentifier() {
	start := l.pos
	for !l.atEOL() && isAlphaNum(l.line[l.pos]) {
		l.pos++
	}
	text := l.line[start:l.pos]
	tt := ID
	if _, ok := keywords[text]; ok {
		tt = KEYWORD
	}
	l.tokens = append(l.tokens, Token{Type: tt, Text: text, Line: l.lineNo, Col: start + 1})
}

// scanNumber consumes digits and at most one '.'. A second '.' terminates the
// number before it is consumed, so "1.2.3" lexes as FLOAT "1.2", DOT,
// INTEGER "3".
func (l *Lexer) scanNumber() {
	start := l.pos
	dots := 0
	for !l.atEOL() {
		b := l.line[l.pos]
		if b == '.' {
			if dots == 1 {
				break
			}
			dots++
		} else if !isDigit(b) {
			break
		}
		l.pos++
	}
	tt := INTEGER
	if dots > 0 {
		tt = FLOAT
	}
	l.tokens = append(l.tokens, Token{Type: tt, Text: l.line[start:l.pos], Line: l.lineNo, Col: start + 1})
}

// scanString consumes a quoted string on the current line. Escapes: \n, \t,
// the quote character, and backslash; any other escaped character passes
// through literally. An unterminated string runs to end of line.
func (l *Lexer) scanString() {
	quote := l.line[l.pos]
	start := l.pos
	l.pos++

	var out strings.Builder
	escaped := false
	for !l.atEOL() {
		ch := l.line[l.pos]
		if escaped {
			switch ch {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			default:
				out.WriteByte(ch)
			}
			escaped = false
			l.pos++
			continue
		}
		if ch == '\\' {
			escaped = true
			l.pos++
			continue
		}
		if ch == quote {
			l.pos++
			break
		}
		out.WriteByte(ch)
		l.pos++
	}
	l.tokens = append(l.tokens, Token{Type: STRING, Text: out.String(), Line: l.lineNo, Col: start + 1})
}
