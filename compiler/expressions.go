package compiler

import (
	"golox/chunk"
	"golox/object"
	"golox/token"
)

func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

func (c *Compiler) parsePrecedence(prec precedence) {
	c.advance()
	prefixRule := getRule(c.previous().Type).prefix
	if prefixRule == nil {
		c.errorAt(c.previous(), "Expect expression.")
		return
	}

	canAssign := prec <= precAssignment
	prefixRule(c, canAssign)

	for prec <= getRule(c.peek().Type).precedence {
		c.advance()
		infixRule := getRule(c.previous().Type).infix
		infixRule(c, canAssign)
	}

	if canAssign && c.match(token.EQUAL) {
		c.errorAt(c.previous(), "Invalid assignment target.")
	}
}

func (c *Compiler) number(canAssign bool) {
	value := c.previous().Literal.(float64)
	c.emitConstant(object.Number(value))
}

func (c *Compiler) stringLiteral(canAssign bool) {
	value := c.previous().Literal.(string)
	c.emitConstant(object.String(value))
}

func (c *Compiler) literal(canAssign bool) {
	switch c.previous().Type {
	case token.FALSE:
		c.emit(chunk.OpFalse)
	case token.TRUE:
		c.emit(chunk.OpTrue)
	case token.NIL:
		c.emit(chunk.OpNil)
	}
}

func (c *Compiler) grouping(canAssign bool) {
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after expression.")
}

func (c *Compiler) unary(canAssign bool) {
	operatorType := c.previous().Type
	c.parsePrecedence(precUnary)

	switch operatorType {
	case token.MINUS:
		c.emit(chunk.OpNegate)
	case token.BANG:
		c.emit(chunk.OpNot)
	}
}

func (c *Compiler) binary(canAssign bool) {
	operatorType := c.previous().Type
	rule := getRule(operatorType)
	c.parsePrecedence(rule.precedence + 1)

	switch operatorType {
	case token.BANG_EQUAL:
		c.emit(chunk.OpEqual)
		c.emit(chunk.OpNot)
	case token.EQUAL_EQUAL:
		c.emit(chunk.OpEqual)
	case token.GREATER:
		c.emit(chunk.OpGreater)
	case token.GREATER_EQUAL:
		c.emit(chunk.OpLess)
		c.emit(chunk.OpNot)
	case token.LESS:
		c.emit(chunk.OpLess)
	case token.LESS_EQUAL:
		c.emit(chunk.OpGreater)
		c.emit(chunk.OpNot)
	case token.PLUS:
		c.emit(chunk.OpAdd)
	case token.MINUS:
		c.emit(chunk.OpSubtract)
	case token.STAR:
		c.emit(chunk.OpMultiply)
	case token.SLASH:
		c.emit(chunk.OpDivide)
	}
}

func (c *Compiler) and(canAssign bool) {
	endJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emit(chunk.OpPop)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

func (c *Compiler) or(canAssign bool) {
	elseJump := c.emitJump(chunk.OpJumpIfFalse)
	endJump := c.emitJump(chunk.OpJump)

	c.patchJump(elseJump)
	c.emit(chunk.OpPop)

	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

func (c *Compiler) call(canAssign bool) {
	argCount := c.argumentList()
	c.emit(chunk.OpCall, argCount)
}

func (c *Compiler) argumentList() int {
	argCount := 0
	if !c.check(token.RPAREN) {
		for {
			c.expression()
			if argCount == 255 {
				c.errorAt(c.previous(), "Can't have more than 255 arguments.")
			}
			argCount++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "Expect ')' after arguments.")
	return argCount
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.previous(), canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp chunk.OpCode
	arg := c.resolveLocal(name)
	if arg != -1 {
		getOp, setOp = chunk.OpGetLocal, chunk.OpSetLocal
	} else if arg = c.resolveUpvalue(name); arg != -1 {
		getOp, setOp = chunk.OpGetUpvalue, chunk.OpSetUpvalue
	} else {
		arg = c.identifierConstant(name)
		getOp, setOp = chunk.OpGetGlobal, chunk.OpSetGlobal
	}

	if canAssign && c.match(token.EQUAL) {
		c.expression()
		c.emit(setOp, arg)
	} else {
		c.emit(getOp, arg)
	}
}

func (c *Compiler) identifierConstant(name token.Token) int {
	return c.addConstant(object.String(name.Lexeme))
}
