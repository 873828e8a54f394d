// Package lexer converts source text into a stream of tokens (spec §4.1).
//
// The lexer is a single, deterministic, forward-only machine with a cursor
// and a (line, col) location. It does not buffer beyond the current token,
// except for the small lookahead window Peek opens for the parser — the
// same shape as the teacher's TokenBuffer-backed Peek(n).
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/aotlang/aotc/internal/diag"
	"github.com/aotlang/aotc/internal/source"
	"github.com/aotlang/aotc/internal/token"
)

// Lexer scans one translation unit's source text into tokens.
type Lexer struct {
	input string
	bag   *diag.Bag

	pos     int // byte offset of ch
	readPos int // byte offset of the rune after ch
	line    uint16
	col     uint16
	ch      rune

	buffered []token.Token // lookahead buffer, consumed by Peek/Lex
}

// New creates a Lexer over input, reporting lex errors to bag. A UTF-8 BOM
// at the start of input is stripped, matching common source-file hygiene.
func New(input string, bag *diag.Bag) *Lexer {
	if strings.HasPrefix(input, "\xef\xbb\xbf") {
		input = input[len("\xef\xbb\xbf"):]
	}
	l := &Lexer{input: input, bag: bag, line: 1, col: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		l.col++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
	l.col++
	if r == utf8.RuneError && size == 1 {
		l.bag.ErrorAt(diag.KindLex, "invalid UTF-8 encoding", l.currentLoc())
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) currentLoc() source.Loc {
	return source.Loc{Line: l.line, Col: l.col}
}

// Peek returns the token n positions ahead without consuming it. Peek(0) is
// the next token Lex() would return.
func (l *Lexer) Peek(n int) token.Token {
	for len(l.buffered) <= n {
		l.buffered = append(l.buffered, l.scan())
	}
	return l.buffered[n]
}

// Lex returns the next token in the stream, consuming it. Once EOF has
// been reached, subsequent calls keep returning an EndOfFile token
// (spec §4.1 "idempotently").
func (l *Lexer) Lex() token.Token {
	if len(l.buffered) > 0 {
		tok := l.buffered[0]
		l.buffered = l.buffered[1:]
		return tok
	}
	return l.scan()
}

func isLetter(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\n':
			l.line++
			l.col = 0
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for {
				if l.ch == 0 {
					l.bag.ErrorAt(diag.KindLex, "unterminated block comment", l.currentLoc())
					return
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					break
				}
				if l.ch == '\n' {
					l.line++
					l.col = 0
				}
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scan() token.Token {
	l.skipWhitespaceAndComments()

	loc := l.currentLoc()

	if l.ch == 0 {
		return token.Token{Kind: token.EndOfFile, Loc: loc}
	}

	switch {
	case isLetter(l.ch):
		return l.scanIdentifier(loc)
	case isDigit(l.ch):
		return l.scanNumber(loc)
	case l.ch == '.' && isDigit(l.peekChar()):
		return l.scanNumber(loc)
	case l.ch == '\'':
		return l.scanCharacter(loc)
	case l.ch == '"':
		return l.scanString(loc)
	}

	return l.scanPunctuation(loc)
}

func (l *Lexer) scanIdentifier(loc source.Loc) token.Token {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return token.Token{Kind: token.Identifier, Loc: loc, Value: l.input[start:l.pos]}
}

// scanNumber implements spec §4.1's Integer/Float grammar: a trailing
// letter group is never consumed into the number (it becomes the next
// Identifier token), and a float requires the literal dot.
func (l *Lexer) scanNumber(loc source.Loc) token.Token {
	start := l.pos
	isFloat := false

	if l.ch == '.' {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	} else {
		for isDigit(l.ch) {
			l.readChar()
		}
		if l.ch == '.' {
			isFloat = true
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	kind := token.Integer
	if isFloat {
		kind = token.Float
	}
	return token.Token{Kind: kind, Loc: loc, Value: l.input[start:l.pos]}
}

var charEscapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'0':  0,
}

func (l *Lexer) readEscapedByte(loc source.Loc) (rune, bool) {
	l.readChar() // consume backslash
	escaped, ok := charEscapes[l.ch]
	if !ok {
		l.bag.ErrorAt(diag.KindLex, "unknown escape sequence", loc)
		escaped = l.ch
	}
	l.readChar()
	return escaped, true
}

func (l *Lexer) scanCharacter(loc source.Loc) token.Token {
	l.readChar() // consume opening '
	var value rune
	if l.ch == '\\' {
		value, _ = l.readEscapedByte(loc)
	} else if l.ch == 0 || l.ch == '\'' {
		l.bag.ErrorAt(diag.KindLex, "empty character literal", loc)
	} else {
		value = l.ch
		l.readChar()
	}
	if l.ch != '\'' {
		l.bag.ErrorAt(diag.KindLex, "unterminated character literal", loc)
	} else {
		l.readChar()
	}
	return token.Token{Kind: token.Character, Loc: loc, Value: string(value)}
}

func (l *Lexer) scanString(loc source.Loc) token.Token {
	l.readChar() // consume opening "
	var sb strings.Builder
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			l.bag.ErrorAt(diag.KindLex, "unterminated string literal", loc)
			break
		}
		if l.ch == '\\' {
			escaped, _ := l.readEscapedByte(loc)
			sb.WriteRune(escaped)
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == '"' {
		l.readChar()
	}
	return token.Token{Kind: token.String, Loc: loc, Value: sb.String()}
}

// twoCharOps and threeCharOps implement maximal munch for compound
// operators (spec §4.1). Checked longest-first.
var threeCharOps = map[string]token.Kind{
	"<<=": token.ShlAssign,
	">>=": token.ShrAssign,
}

var twoCharOps = map[string]token.Kind{
	"==": token.Eq,
	"!=": token.NotEq,
	"<=": token.LessEq,
	">=": token.GreaterEq,
	"<<": token.Shl,
	">>": token.Shr,
	"&&": token.AmpAmp,
	"||": token.PipePipe,
	"->": token.Arrow,
	"::": token.ColonColon,
	"++": token.Inc,
	"--": token.Dec,
	"+=": token.PlusAssign,
	"-=": token.MinusAssign,
	"*=": token.StarAssign,
	"/=": token.SlashAssign,
	"%=": token.PercentAssign,
	"&=": token.AmpAssign,
	"|=": token.PipeAssign,
	"^=": token.CaretAssign,
}

var oneCharOps = map[rune]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	':': token.Colon,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
	'!': token.Bang,
	'=': token.Assign,
	'<': token.Less,
	'>': token.Greater,
	'@': token.At,
}

func (l *Lexer) scanPunctuation(loc source.Loc) token.Token {
	if l.pos+2 < len(l.input) {
		if k, ok := threeCharOps[l.input[l.pos:l.pos+3]]; ok {
			l.readChar()
			l.readChar()
			l.readChar()
			return token.Token{Kind: k, Loc: loc}
		}
	}
	if l.pos+1 < len(l.input) {
		if k, ok := twoCharOps[l.input[l.pos:l.pos+2]]; ok {
			l.readChar()
			l.readChar()
			return token.Token{Kind: k, Loc: loc}
		}
	}
	if k, ok := oneCharOps[l.ch]; ok {
		ch := l.ch
		l.readChar()
		return token.Token{Kind: k, Loc: loc, Value: string(ch)}
	}

	bad := l.ch
	l.bag.ErrorAt(diag.KindLex, "unrecognized character: "+string(bad), loc)
	l.readChar()
	return token.Token{Kind: token.Illegal, Loc: loc, Value: string(bad)}
}
