package interp

// The remap language: a program is a sequence of statements separated
// by newlines or semicolons. A statement is either an assignment
// `.path = expr` or a bare expression evaluated for its side effects
// (`del(.path)` being the usual one). Expressions are literals, dot
// paths into the event, or builtin calls. `#` starts a comment. The
// value of the program is the event after all statements have run.

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tkEOF tokenKind = iota
	tkPath
	tkIdent
	tkString
	tkNumber
	tkAssign
	tkLParen
	tkRParen
	tkComma
)

type token struct {
	kind tokenKind
	text string // raw text for idents, error messages
	segs []string
	val  any // parsed value for strings and numbers
	col  int // 1-based
}

type expr interface{}

type litExpr struct{ val any }

type pathExpr struct {
	segs []string
	col  int
}

type callExpr struct {
	name string
	args []expr
	col  int
}

type stmt interface{}

type assignStmt struct {
	line   int
	target pathExpr
	value  expr
}

type exprStmt struct {
	line int
	e    expr
}

// compile parses the whole program up front so syntax errors are
// reported before any part of the event is touched.
func compile(program string) ([]stmt, error) {
	var stmts []stmt
	for i, line := range strings.Split(program, "\n") {
		ln := i + 1
		for _, part := range splitStatements(line) {
			if strings.TrimSpace(part) == "" {
				continue
			}
			toks, err := lex(part, ln)
			if err != nil {
				return nil, err
			}
			s, err := parseStmt(ln, toks)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, s)
		}
	}
	return stmts, nil
}

// splitStatements splits one source line on semicolons and strips
// comments, respecting string literals.
func splitStatements(line string) []string {
	var parts []string
	var b strings.Builder
	inStr := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inStr:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(line) {
				b.WriteByte(line[i+1])
				i++
			} else if c == '"' {
				inStr = false
			}
		case c == '"':
			inStr = true
			b.WriteByte(c)
		case c == '#':
			parts = append(parts, b.String())
			return parts
		case c == ';':
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	parts = append(parts, b.String())
	return parts
}

func lex(src string, line int) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		col := i + 1
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '.':
			segs, n, err := lexPath(src[i:], line, col)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tkPath, text: src[i : i+n], segs: segs, col: col})
			i += n
		case c == '=':
			toks = append(toks, token{kind: tkAssign, text: "=", col: col})
			i++
		case c == '(':
			toks = append(toks, token{kind: tkLParen, text: "(", col: col})
			i++
		case c == ')':
			toks = append(toks, token{kind: tkRParen, text: ")", col: col})
			i++
		case c == ',':
			toks = append(toks, token{kind: tkComma, text: ",", col: col})
			i++
		case c == '"':
			end := -1
			for j := i + 1; j < len(src); j++ {
				if src[j] == '\\' {
					j++
					continue
				}
				if src[j] == '"' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, syntaxErr(line, col, "unterminated string literal")
			}
			s, err := strconv.Unquote(src[i : end+1])
			if err != nil {
				return nil, syntaxErr(line, col, "invalid string literal")
			}
			toks = append(toks, token{kind: tkString, text: src[i : end+1], val: s, col: col})
			i = end + 1
		case c == '-' || (c >= '0' && c <= '9'):
			j := i + 1
			for j < len(src) && (src[j] == '.' || (src[j] >= '0' && src[j] <= '9')) {
				j++
			}
			num, err := strconv.ParseFloat(src[i:j], 64)
			if err != nil {
				return nil, syntaxErr(line, col, fmt.Sprintf("invalid number %q", src[i:j]))
			}
			toks = append(toks, token{kind: tkNumber, text: src[i:j], val: num, col: col})
			i = j
		case isIdentStart(c):
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tkIdent, text: src[i:j], col: col})
			i = j
		default:
			return nil, syntaxErr(line, col, fmt.Sprintf("unexpected character %q", string(c)))
		}
	}
	toks = append(toks, token{kind: tkEOF, col: len(src) + 1})
	return toks, nil
}

// lexPath consumes a dot path starting at src[0] == '.'. A lone dot is
// the root path.
func lexPath(src string, line, col int) ([]string, int, error) {
	var segs []string
	i := 0
	for i < len(src) && src[i] == '.' {
		j := i + 1
		for j < len(src) && isIdentPart(src[j]) {
			j++
		}
		if j == i+1 {
			if len(segs) == 0 {
				// bare root path "."
				return nil, 1, nil
			}
			return nil, 0, syntaxErr(line, col, "invalid path: trailing dot")
		}
		segs = append(segs, src[i+1:j])
		i = j
	}
	return segs, i, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

type parser struct {
	line int
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tkEOF {
		p.pos++
	}
	return t
}

func parseStmt(line int, toks []token) (stmt, error) {
	p := &parser{line: line, toks: toks}
	if p.peek().kind == tkPath && len(toks) > 1 && toks[1].kind == tkAssign {
		target := p.next()
		p.next() // '='
		if len(target.segs) == 0 {
			return nil, syntaxErr(line, target.col, "cannot assign to the root path")
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectEOF(); err != nil {
			return nil, err
		}
		return assignStmt{line: line, target: pathExpr{segs: target.segs, col: target.col}, value: val}, nil
	}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return exprStmt{line: line, e: e}, nil
}

func (p *parser) parseExpr() (expr, error) {
	t := p.next()
	switch t.kind {
	case tkString, tkNumber:
		return litExpr{val: t.val}, nil
	case tkPath:
		return pathExpr{segs: t.segs, col: t.col}, nil
	case tkIdent:
		switch t.text {
		case "true":
			return litExpr{val: true}, nil
		case "false":
			return litExpr{val: false}, nil
		case "null":
			return litExpr{val: nil}, nil
		}
		if p.peek().kind != tkLParen {
			return nil, syntaxErr(p.line, t.col, fmt.Sprintf("undefined variable %q", t.text))
		}
		p.next() // '('
		var args []expr
		if p.peek().kind != tkRParen {
			for {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.peek().kind != tkComma {
					break
				}
				p.next()
			}
		}
		if p.peek().kind != tkRParen {
			return nil, syntaxErr(p.line, p.peek().col, "expected ')'")
		}
		p.next()
		return callExpr{name: t.text, args: args, col: t.col}, nil
	case tkEOF:
		return nil, syntaxErr(p.line, t.col, "unexpected end of statement")
	default:
		return nil, syntaxErr(p.line, t.col, fmt.Sprintf("unexpected token %q", t.text))
	}
}

func (p *parser) expectEOF() error {
	if t := p.peek(); t.kind != tkEOF {
		return syntaxErr(p.line, t.col, fmt.Sprintf("unexpected token %q", t.text))
	}
	return nil
}

func syntaxErr(line, col int, msg string) error {
	return fmt.Errorf("syntax error at line %d, column %d: %s", line, col, msg)
}

func runtimeErr(line int, msg string) error {
	return fmt.Errorf("error at line %d: %s", line, msg)
}
