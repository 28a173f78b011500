// Package parser implements the recursive-descent parser that turns a
// token stream into the ast package's statement and expression trees.
package parser

import (
	"golox/ast"
	"golox/report"
	"golox/token"
)

// parseError unwinds the recursive descent back to a synchronization
// point. It is never returned across the package boundary; Parse
// recovers it and reports through the Sink instead.
type parseError struct{}

// Parser is a single-pass recursive-descent parser over a fixed token
// slice. Each grammar rule is one method, ordered from lowest to highest
// precedence exactly as the language grammar requires.
type Parser struct {
	tokens  []token.Token
	current int
	sink    *report.Sink
	nextID  int
}

// New returns a Parser over tokens, reporting syntax errors into sink.
func New(tokens []token.Token, sink *report.Sink) *Parser {
	return &Parser{tokens: tokens, sink: sink}
}

func (p *Parser) id() int {
	p.nextID++
	return p.nextID
}

// Parse parses the whole token stream into a program: a slice of
// top-level statements. Parsing continues past a syntax error by
// synchronizing to the next statement boundary, so a single run can
// surface more than one diagnostic.
func (p *Parser) Parse() []ast.Stmt {
	var statements []ast.Stmt
	for !p.isAtEnd() {
		stmt := p.declarationRecovering()
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func (p *Parser) declarationRecovering() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()
	return p.declaration()
}

func (p *Parser) declaration() ast.Stmt {
	if p.match(token.FUN) {
		return p.function("function")
	}
	if p.match(token.VAR) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) function(kind string) ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	p.consume(token.LPAREN, "Expect '(' after "+kind+" name.")
	var params []token.Token
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= 255 {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after parameters.")
	p.consume(token.LBRACE, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.Function{ID: p.id(), Name: name, Params: params, Body: body}
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")
	var initializer ast.Expr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}
	p.consume(token.SEMI, "Expect ';' after variable declaration.")
	return &ast.Var{ID: p.id(), Name: name, Initializer: initializer}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.LBRACE):
		return &ast.Block{ID: p.id(), Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars `for (init; cond; incr) body` into the While
// node the resolver and interpreter already know how to handle: the body
// becomes a block of [body, incr], and that while loop is itself wrapped
// in a block with init, so the loop variable stays scoped to the loop.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LPAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMI):
		initializer = nil
	case p.match(token.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(token.SEMI) {
		condition = p.expression()
	}
	p.consume(token.SEMI, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RPAREN) {
		increment = p.expression()
	}
	p.consume(token.RPAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.Block{ID: p.id(), Statements: []ast.Stmt{body, &ast.Expression{ID: p.id(), Expression: increment}}}
	}
	if condition == nil {
		condition = &ast.Literal{ID: p.id(), Value: true}
	}
	body = &ast.While{ID: p.id(), Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.Block{ID: p.id(), Statements: []ast.Stmt{initializer, body}}
	}
	return body
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LPAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RPAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.If{ID: p.id(), Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func (p *Parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(token.SEMI, "Expect ';' after value.")
	return &ast.Print{ID: p.id(), Expression: value}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMI) {
		value = p.expression()
	}
	p.consume(token.SEMI, "Expect ';' after return value.")
	return &ast.Return{ID: p.id(), Keyword: keyword, Value: value}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LPAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RPAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.While{ID: p.id(), Condition: condition, Body: body}
}

func (p *Parser) block() []ast.Stmt {
	var statements []ast.Stmt
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		statements = append(statements, p.declarationRecovering())
	}
	p.consume(token.RBRACE, "Expect '}' after block.")
	return statements
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMI, "Expect ';' after expression.")
	return &ast.Expression{ID: p.id(), Expression: expr}
}

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{ID: p.id(), Name: v.Name, Value: value}
		}
		p.errorAt(equals, "Invalid assignment target.")
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		operator := p.previous()
		right := p.and()
		expr = &ast.Logical{ID: p.id(), Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		operator := p.previous()
		right := p.equality()
		expr = &ast.Logical{ID: p.id(), Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		operator := p.previous()
		right := p.comparison()
		expr = &ast.Binary{ID: p.id(), Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		operator := p.previous()
		right := p.term()
		expr = &ast.Binary{ID: p.id(), Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		operator := p.previous()
		right := p.factor()
		expr = &ast.Binary{ID: p.id(), Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		operator := p.previous()
		right := p.unary()
		expr = &ast.Binary{ID: p.id(), Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		operator := p.previous()
		right := p.unary()
		return &ast.Unary{ID: p.id(), Operator: operator, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		if p.match(token.LPAREN) {
			expr = p.finishCall(expr)
		} else {
			break
		}
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= 255 {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RPAREN, "Expect ')' after arguments.")
	return &ast.Call{ID: p.id(), Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{ID: p.id(), Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{ID: p.id(), Value: true}
	case p.match(token.NIL):
		return &ast.Literal{ID: p.id(), Value: nil}
	case p.match(token.NUMBER, token.STRING):
		return &ast.Literal{ID: p.id(), Value: p.previous().Literal}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{ID: p.id(), Name: p.previous()}
	case p.match(token.LPAREN):
		expr := p.expression()
		p.consume(token.RPAREN, "Expect ')' after expression.")
		return &ast.Grouping{ID: p.id(), Expression: expr}
	}
	panic(p.errorAt(p.peek(), "Expect expression."))
}

// --- token-stream primitives ---

func (p *Parser) match(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(t token.TokenType, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

func (p *Parser) errorAt(tok token.Token, message string) parseError {
	where := " at '" + tok.Lexeme + "'"
	if tok.Type == token.EOF {
		where = " at end"
	}
	p.sink.ErrorAt(tok.Line, where, message)
	return parseError{}
}

// synchronize discards tokens until it reaches a likely statement
// boundary, so one syntax error doesn't cascade into a flood of
// spurious ones.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.SEMI {
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
