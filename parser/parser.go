/*
File    : lumen/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package parser turns a token stream into a list of statements
// (recursive-descent, with a Pratt-style precedence cascade for
// expressions). It never evaluates anything it parses.
package parser

import (
	"fmt"

	"github.com/akashmaji946/lumen/lexer"
	"github.com/akashmaji946/lumen/token"
)

const maxArgs = 255

// Parser consumes tokens from a lexer and builds Stmt/Expr trees.
type Parser struct {
	lex     *lexer.Lexer
	current token.Token
	prev    token.Token
	errors  []string
	failed  bool
}

// New creates a Parser reading from src.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.advance()
	return p
}

// HasErrors reports whether any parse error was recorded.
func (p *Parser) HasErrors() bool { return p.failed }

// Errors returns the recorded parse diagnostics, in order.
func (p *Parser) Errors() []string { return p.errors }

// lastNodeID numbers expression nodes across every Parser, so IDs stay
// unique when separately parsed inputs (the REPL's lines) are resolved
// into one shared side-table.
var lastNodeID int

func (p *Parser) id() int {
	lastNodeID++
	return lastNodeID
}

func (p *Parser) advance() {
	p.prev = p.current
	for {
		p.current = p.lex.NextToken()
		if p.current.Kind != token.INVALID {
			break
		}
	}
}

func (p *Parser) check(k token.Kind) bool { return p.current.Kind == k }

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(k token.Kind, msg string) token.Token {
	if p.check(k) {
		t := p.current
		p.advance()
		return t
	}
	p.errorAt(p.current, msg)
	return p.current
}

func (p *Parser) errorAt(t token.Token, msg string) {
	p.failed = true
	where := fmt.Sprintf("at '%s'", t.Lexeme)
	if t.Kind == token.EOF {
		where = "at end"
	}
	p.errors = append(p.errors, fmt.Sprintf("line %d error %s: %s", t.Line, where, msg))
}

// synchronize discards tokens until a likely statement boundary, so the
// parser can keep collecting further errors after one.
func (p *Parser) synchronize() {
	p.advance()
	for p.current.Kind != token.EOF {
		if p.prev.Kind == token.SEMI {
			return
		}
		switch p.current.Kind {
		case token.IF, token.FUN, token.LET, token.VAR, token.FOR, token.ENUM,
			token.BREAK, token.CLASS, token.WHILE, token.IMPORT, token.RETURN, token.CONTINUE:
			return
		}
		p.advance()
	}
}

// Parse runs the whole program through to a statement list, or returns
// nil if any lex or parse error occurred. Lex errors accumulate on the
// lexer during scanning and are folded into the parser's diagnostics
// here, so a program with an unterminated string never reaches the
// resolver.
func (p *Parser) Parse() []Stmt {
	var stmts []Stmt
	for p.current.Kind != token.EOF {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	if len(p.lex.Errors) > 0 {
		p.failed = true
		p.errors = append(p.errors, p.lex.Errors...)
	}
	if p.failed {
		return nil
	}
	return stmts
}

// ---- Declarations & statements ----

func (p *Parser) declaration() Stmt {
	switch {
	case p.match(token.VAR):
		return p.varDeclaration()
	case p.match(token.LET):
		return p.letDeclaration()
	case p.match(token.FUN):
		return p.functionDeclaration("function")
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.ENUM), p.match(token.IMPORT):
		// Declared but out of scope: consume to the next statement
		// boundary and contribute nothing to the tree.
		p.synchronize()
		return nil
	}
	return p.statement()
}

func (p *Parser) varDeclaration() Stmt {
	name := p.expect(token.IDENTIFIER, "expect variable name")
	var init Expr
	if p.match(token.ASSIGN) {
		init = p.expression()
	}
	p.expect(token.SEMI, "expect ';' after variable declaration")
	return &VarStmt{Name: name, Init: init}
}

func (p *Parser) letDeclaration() Stmt {
	name := p.expect(token.IDENTIFIER, "expect variable name")
	p.expect(token.ASSIGN, "'let' requires an initializer")
	init := p.expression()
	p.expect(token.SEMI, "expect ';' after let declaration")
	return &LetStmt{Name: name, Init: init}
}

func (p *Parser) functionDeclaration(kind string) *FunctionStmt {
	name := p.expect(token.IDENTIFIER, "expect "+kind+" name")
	p.expect(token.LPAREN, "expect '(' after "+kind+" name")
	var params []token.Token
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.current, "can't have more than 255 parameters")
			}
			params = append(params, p.expect(token.IDENTIFIER, "expect parameter name"))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN, "expect ')' after parameters")
	p.expect(token.LBRACE, "expect '{' before "+kind+" body")
	body := p.block()
	return &FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) classDeclaration() Stmt {
	name := p.expect(token.IDENTIFIER, "expect class name")
	var super *VariableExpr
	if p.match(token.COLON) {
		superName := p.expect(token.IDENTIFIER, "expect superclass name")
		super = &VariableExpr{node: node{p.id()}, Name: superName}
	}
	p.expect(token.LBRACE, "expect '{' before class body")
	var methods []*FunctionStmt
	for !p.check(token.RBRACE) && p.current.Kind != token.EOF {
		p.expect(token.FUN, "expect 'fun' before method declaration")
		methods = append(methods, p.functionDeclaration("method"))
	}
	p.expect(token.RBRACE, "expect '}' after class body")
	return &ClassStmt{Name: name, Superclass: super, Methods: methods}
}

func (p *Parser) statement() Stmt {
	switch {
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.WHEN):
		return p.whenStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.BREAK):
		kw := p.prev
		p.expect(token.SEMI, "expect ';' after 'break'")
		return &BreakStmt{Keyword: kw}
	case p.match(token.CONTINUE):
		kw := p.prev
		p.expect(token.SEMI, "expect ';' after 'continue'")
		return &ContinueStmt{Keyword: kw}
	case p.match(token.LBRACE):
		return &BlockStmt{Statements: p.block()}
	}
	return p.expressionStatement()
}

func (p *Parser) block() []Stmt {
	var stmts []Stmt
	for !p.check(token.RBRACE) && p.current.Kind != token.EOF {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(token.RBRACE, "expect '}' after block")
	return stmts
}

func (p *Parser) ifStatement() Stmt {
	p.expect(token.LPAREN, "expect '(' after 'if'")
	cond := p.expression()
	p.expect(token.RPAREN, "expect ')' after if condition")
	then := p.statement()
	var elseBranch Stmt
	if p.match(token.ELIF) {
		// elif chains become nested If nodes in the else slot.
		elseBranch = p.elifStatement()
	} else if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &IfStmt{Condition: cond, Then: then, Else: elseBranch}
}

// elifStatement parses the condition/body of an already-consumed `elif`
// and recurses for any further `elif`/`else` tail, without re-consuming
// the `if` keyword.
func (p *Parser) elifStatement() Stmt {
	p.expect(token.LPAREN, "expect '(' after 'elif'")
	cond := p.expression()
	p.expect(token.RPAREN, "expect ')' after elif condition")
	then := p.statement()
	var elseBranch Stmt
	if p.match(token.ELIF) {
		elseBranch = p.elifStatement()
	} else if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &IfStmt{Condition: cond, Then: then, Else: elseBranch}
}

func (p *Parser) whileStatement() Stmt {
	p.expect(token.LPAREN, "expect '(' after 'while'")
	cond := p.expression()
	p.expect(token.RPAREN, "expect ')' after while condition")
	body := p.statement()
	return &WhileStmt{Condition: cond, Body: body}
}

// forStatement parses `for (name in iterable) body`. Evaluation is a
// documented no-op; the grammar is real so programs
// using the syntax still parse and resolve cleanly.
func (p *Parser) forStatement() Stmt {
	p.expect(token.LPAREN, "expect '(' after 'for'")
	name := p.expect(token.IDENTIFIER, "expect loop variable name")
	p.expect(token.IN, "expect 'in' in for loop")
	iterable := p.expression()
	p.expect(token.RPAREN, "expect ')' after for clause")
	body := p.statement()
	return &ForStmt{VarName: name, Iterable: iterable, Body: body}
}

func (p *Parser) whenStatement() Stmt {
	p.expect(token.LPAREN, "expect '(' after 'when'")
	subject := p.expression()
	p.expect(token.RPAREN, "expect ')' after when subject")
	p.expect(token.LBRACE, "expect '{' before when body")

	var branches []WhenBranch
	var elseBody Stmt
	for !p.check(token.RBRACE) && p.current.Kind != token.EOF {
		if p.match(token.ELSE) {
			p.expect(token.ARROW, "expect '->' after 'else'")
			elseBody = p.whenArmBody()
			continue
		}
		var conds []Expr
		for {
			conds = append(conds, p.whenCondition(subject))
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.ARROW, "expect '->' after when condition")
		branches = append(branches, WhenBranch{Conditions: conds, Body: p.whenArmBody()})
	}
	p.expect(token.RBRACE, "expect '}' after when body")
	return &WhenStmt{Subject: subject, Branches: branches, Else: elseBody}
}

// whenArmBody accepts either a brace block or a single statement
// terminated by ';' (desugared into the latter by most arms in
// practice).
func (p *Parser) whenArmBody() Stmt {
	if p.match(token.LBRACE) {
		return &BlockStmt{Statements: p.block()}
	}
	return p.statement()
}

// whenCondition parses one comma-separated arm condition: a bare
// in/is (or negation) expression with the subject injected as the left
// operand, or any other expression desugared to `subject == condition`.
func (p *Parser) whenCondition(subject Expr) Expr {
	switch {
	case p.check(token.IN), p.check(token.IS):
		op := p.current
		p.advance()
		return &BinaryExpr{node: node{p.id()}, Left: subject, Op: op, Right: p.rangeExpr()}
	case p.check(token.NOT):
		// Could be a bare `not in`/`not is` condition or an ordinary
		// `!`-prefixed expression; only the next token tells them apart.
		notTok := p.current
		p.advance()
		var synthKind token.Kind
		var lexeme string
		switch {
		case p.match(token.IN):
			synthKind, lexeme = token.NOTIN, "not in"
		case p.match(token.IS):
			synthKind, lexeme = token.NOTIS, "not is"
		default:
			operand := &UnaryExpr{node: node{p.id()}, Op: notTok, Right: p.unary()}
			eqTok := token.Token{Kind: token.EQ, Lexeme: "==", Line: notTok.Line}
			return &BinaryExpr{node: node{p.id()}, Left: subject, Op: eqTok, Right: operand}
		}
		op := token.Token{Kind: synthKind, Lexeme: lexeme, Line: notTok.Line}
		return &BinaryExpr{node: node{p.id()}, Left: subject, Op: op, Right: p.rangeExpr()}
	}
	cond := p.logicalOr()
	eqTok := token.Token{Kind: token.EQ, Lexeme: "==", Line: p.prev.Line}
	return &BinaryExpr{node: node{p.id()}, Left: subject, Op: eqTok, Right: cond}
}

func (p *Parser) returnStatement() Stmt {
	kw := p.prev
	var value Expr
	if !p.check(token.SEMI) {
		value = p.expression()
	}
	p.expect(token.SEMI, "expect ';' after return value")
	return &ReturnStmt{Keyword: kw, Value: value}
}

func (p *Parser) expressionStatement() Stmt {
	e := p.expression()
	p.expect(token.SEMI, "expect ';' after expression")
	return &ExpressionStmt{Expression: e}
}

// ---- Expressions: precedence cascade, lowest to highest ----
// assignment -> or -> and -> equality -> comparison -> in/is -> range
// -> bitor -> bitxor -> bitand -> shift -> additive -> multiplicative
// -> unary -> power -> call -> primary

func (p *Parser) expression() Expr { return p.assignment() }

func (p *Parser) assignment() Expr {
	left := p.logicalOr()

	var op token.Kind
	switch p.current.Kind {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.PCT_ASSIGN:
		op = p.current.Kind
	default:
		return left
	}
	eq := p.current
	p.advance()
	value := p.assignment()

	switch target := left.(type) {
	case *VariableExpr:
		if op != token.ASSIGN {
			value = desugarCompound(p, target.Name, op, value)
		}
		return &AssignExpr{node: node{p.id()}, Name: target.Name, Value: value}
	case *GetExpr:
		if op != token.ASSIGN {
			p.errorAt(eq, "compound assignment is not supported on fields")
			return left
		}
		return &SetExpr{node: node{p.id()}, Object: target.Object, Name: target.Name, Value: value}
	}
	p.errorAt(eq, "invalid assignment target")
	return left
}

// desugarCompound rewrites `name += value` into `name = name + value`.
func desugarCompound(p *Parser, name token.Token, op token.Kind, rhs Expr) Expr {
	var binOp token.Kind
	switch op {
	case token.PLUS_ASSIGN:
		binOp = token.PLUS
	case token.MINUS_ASSIGN:
		binOp = token.MINUS
	case token.STAR_ASSIGN:
		binOp = token.STAR
	case token.SLASH_ASSIGN:
		binOp = token.SLASH
	case token.PCT_ASSIGN:
		binOp = token.PCT
	}
	left := &VariableExpr{node: node{p.id()}, Name: name}
	opTok := token.Token{Kind: binOp, Lexeme: string(binOp), Line: name.Line}
	return &BinaryExpr{node: node{p.id()}, Left: left, Op: opTok, Right: rhs}
}

func (p *Parser) logicalOr() Expr {
	left := p.logicalAnd()
	for p.check(token.OR) {
		op := p.current
		p.advance()
		right := p.logicalAnd()
		left = &LogicalExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) logicalAnd() Expr {
	left := p.equality()
	for p.check(token.AND) {
		op := p.current
		p.advance()
		right := p.equality()
		left = &LogicalExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) equality() Expr {
	left := p.comparison()
	for p.check(token.EQ) || p.check(token.NE) {
		op := p.current
		p.advance()
		right := p.comparison()
		left = &BinaryExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) comparison() Expr {
	left := p.inIsExpr()
	for p.check(token.LT) || p.check(token.LE) || p.check(token.GT) || p.check(token.GE) {
		op := p.current
		p.advance()
		right := p.inIsExpr()
		left = &BinaryExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
	}
	return left
}

// inIsExpr handles the binary `in`/`is` slot and their `not`-negated
// forms, rewriting the two-token negation into a synthetic operator
// token exactly once per occurrence.
func (p *Parser) inIsExpr() Expr {
	left := p.rangeExpr()
	for {
		switch {
		case p.check(token.IN):
			op := p.current
			p.advance()
			right := p.rangeExpr()
			left = &BinaryExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
		case p.check(token.IS):
			op := p.current
			p.advance()
			right := p.rangeExpr()
			left = &BinaryExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
		case p.check(token.NOT):
			notTok := p.current
			p.advance()
			var synthKind token.Kind
			var lexeme string
			switch {
			case p.check(token.IN):
				synthKind, lexeme = token.NOTIN, "not in"
			case p.check(token.IS):
				synthKind, lexeme = token.NOTIS, "not is"
			default:
				p.errorAt(p.current, "expect 'in' or 'is' after 'not'")
				return left
			}
			p.advance()
			op := token.Token{Kind: synthKind, Lexeme: lexeme, Line: notTok.Line}
			right := p.rangeExpr()
			left = &BinaryExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
		default:
			return left
		}
	}
}

// rangeExpr parses `a..b`, non-associative: at most one `..` per chain.
func (p *Parser) rangeExpr() Expr {
	left := p.bitOr()
	if p.check(token.RANGE) {
		op := p.current
		p.advance()
		right := p.bitOr()
		return &BinaryExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) bitOr() Expr {
	left := p.bitXor()
	for p.check(token.BIT_OR) {
		op := p.current
		p.advance()
		right := p.bitXor()
		left = &BinaryExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) bitXor() Expr {
	left := p.bitAnd()
	for p.check(token.BIT_XOR) {
		op := p.current
		p.advance()
		right := p.bitAnd()
		left = &BinaryExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) bitAnd() Expr {
	left := p.shift()
	for p.check(token.BIT_AND) {
		op := p.current
		p.advance()
		right := p.shift()
		left = &BinaryExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) shift() Expr {
	left := p.additive()
	for p.check(token.SHIFT_L) || p.check(token.SHIFT_R) || p.check(token.SHIFT_RA) {
		op := p.current
		p.advance()
		right := p.additive()
		left = &BinaryExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) additive() Expr {
	left := p.multiplicative()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := p.current
		p.advance()
		right := p.multiplicative()
		left = &BinaryExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) multiplicative() Expr {
	left := p.unary()
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PCT) {
		op := p.current
		p.advance()
		right := p.unary()
		left = &BinaryExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) unary() Expr {
	if p.check(token.MINUS) || p.check(token.NOT) || p.check(token.BIT_NOT) {
		op := p.current
		p.advance()
		right := p.unary()
		return &UnaryExpr{node: node{p.id()}, Op: op, Right: right}
	}
	return p.power()
}

// power parses `base ** exponent`, right-associative by recursing back
// into unary for the exponent.
func (p *Parser) power() Expr {
	left := p.call()
	if p.check(token.POWER) {
		op := p.current
		p.advance()
		right := p.unary()
		return &BinaryExpr{node: node{p.id()}, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) call() Expr {
	e := p.primary()
	for {
		switch {
		case p.match(token.LPAREN):
			e = p.finishCall(e)
		case p.match(token.DOT):
			name := p.expect(token.IDENTIFIER, "expect property name after '.'")
			e = &GetExpr{node: node{p.id()}, Object: e, Name: name}
		default:
			return e
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	var args []Expr
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.current, "can't have more than 255 arguments")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.expect(token.RPAREN, "expect ')' after arguments")
	return &CallExpr{node: node{p.id()}, Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(token.INTEGER):
		return &LiteralExpr{node: node{p.id()}, Value: p.prev.Literal}
	case p.match(token.FLOATING):
		return &LiteralExpr{node: node{p.id()}, Value: p.prev.Literal}
	case p.match(token.TRUE):
		return &LiteralExpr{node: node{p.id()}, Value: true}
	case p.match(token.FALSE):
		return &LiteralExpr{node: node{p.id()}, Value: false}
	case p.match(token.NIL):
		return &LiteralExpr{node: node{p.id()}, Value: nil}
	case p.match(token.THIS):
		return &ThisExpr{node: node{p.id()}, Keyword: p.prev}
	case p.match(token.SUPER):
		kw := p.prev
		p.expect(token.DOT, "expect '.' after 'super'")
		method := p.expect(token.IDENTIFIER, "expect superclass method name")
		return &SuperExpr{node: node{p.id()}, Keyword: kw, Method: method}
	case p.match(token.IDENTIFIER):
		return &VariableExpr{node: node{p.id()}, Name: p.prev}
	case p.match(token.LPAREN):
		inner := p.expression()
		p.expect(token.RPAREN, "expect ')' after expression")
		return &GroupingExpr{node: node{p.id()}, Inner: inner}
	case p.match(token.STR_START):
		return p.stringTemplate()
	}
	p.errorAt(p.current, "expect expression")
	p.advance()
	return &LiteralExpr{node: node{p.id()}, Value: nil}
}

// stringTemplate consumes the STRING/embedded-expr run between a
// STR_START (already consumed) and its matching STR_END.
func (p *Parser) stringTemplate() Expr {
	var parts []Expr
	for !p.check(token.STR_END) && p.current.Kind != token.EOF {
		if p.check(token.STRING) {
			parts = append(parts, &LiteralExpr{node: node{p.id()}, Value: p.current.Literal})
			p.advance()
			continue
		}
		parts = append(parts, p.expression())
	}
	p.expect(token.STR_END, "expect end of string template")
	return &StrTemplateExpr{node: node{p.id()}, Parts: parts}
}
