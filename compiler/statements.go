package compiler

import (
	"golox/chunk"
	"golox/token"
)

func (c *Compiler) declaration() {
	switch {
	case c.match(token.FUN):
		c.funDeclaration()
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.statement()
	}

	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) funDeclaration() {
	name := c.consume(token.IDENTIFIER, "Expect function name.")
	c.declareVariable(name)
	if c.scopeDepth > 0 {
		// Create the local's cell before compiling the body, so a
		// recursive reference inside the body captures the same cell
		// the closure is about to be stored into.
		c.markInitialized()
		slot := len(c.locals) - 1
		c.emit(chunk.OpNil)
		c.emit(chunk.OpDefineLocal, slot)
		c.compileFunction(name, typeFunction)
		c.emit(chunk.OpSetLocal, slot)
		c.emit(chunk.OpPop)
		return
	}
	c.compileFunction(name, typeFunction)
	idx := c.identifierConstant(name)
	c.emit(chunk.OpDefineGlobal, idx)
}

// compileFunction compiles a function body into its own chunk.Function,
// carried in a child Compiler chained to this one so resolveUpvalue can
// walk outward through enclosing function scopes.
func (c *Compiler) compileFunction(name token.Token, kind functionType) {
	child := &Compiler{
		enclosing:    c,
		tokens:       c.tokens,
		current:      c.current,
		sink:         c.sink,
		functionType: kind,
	}
	child.function = chunk.NewFunction(name.Lexeme, 0)
	child.locals = append(child.locals, local{depth: 0})
	child.maxLocals = 1
	child.beginScope()

	child.consume(token.LPAREN, "Expect '(' after function name.")
	if !child.check(token.RPAREN) {
		for {
			child.function.Arity++
			if child.function.Arity > 255 {
				child.errorAt(child.peek(), "Can't have more than 255 parameters.")
			}
			paramName := child.consume(token.IDENTIFIER, "Expect parameter name.")
			child.declareVariable(paramName)
			child.markInitialized()
			if !child.match(token.COMMA) {
				break
			}
		}
	}
	child.consume(token.RPAREN, "Expect ')' after parameters.")
	child.consume(token.LBRACE, "Expect '{' before function body.")
	child.block()
	child.emitReturn()
	child.function.NumLocals = child.maxLocals

	// resume the parent's scan at wherever the child left off.
	c.current = child.current
	c.panicMode = c.panicMode || child.panicMode

	upvalues := child.upvalues
	idx := c.addConstant(child.function)
	c.function.Chunk.WriteClosure(idx, upvalues, c.line())
}

func (c *Compiler) varDeclaration() {
	name := c.consume(token.IDENTIFIER, "Expect variable name.")
	c.declareVariable(name)

	if c.match(token.EQUAL) {
		c.expression()
	} else {
		c.emit(chunk.OpNil)
	}
	c.consume(token.SEMI, "Expect ';' after variable declaration.")
	c.defineVariable(name)
}

func (c *Compiler) defineVariable(name token.Token) {
	if c.scopeDepth > 0 {
		// Pop the initializer into a fresh cell for this slot. A fresh
		// cell per execution is what gives a closure declared inside a
		// loop body its own copy of each iteration's locals.
		c.markInitialized()
		c.emit(chunk.OpDefineLocal, len(c.locals)-1)
		return
	}
	idx := c.identifierConstant(name)
	c.emit(chunk.OpDefineGlobal, idx)
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.RETURN):
		c.returnStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.LBRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RBRACE, "Expect '}' after block.")
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMI, "Expect ';' after value.")
	c.emit(chunk.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMI, "Expect ';' after expression.")
	c.emit(chunk.OpPop)
}

func (c *Compiler) returnStatement() {
	if c.functionType == typeScript {
		c.errorAt(c.previous(), "Can't return from top-level code.")
	}
	if c.match(token.SEMI) {
		c.emitReturn()
		return
	}
	c.expression()
	c.consume(token.SEMI, "Expect ';' after return value.")
	c.emit(chunk.OpReturn)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LPAREN, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after condition.")

	thenJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emit(chunk.OpPop)
	c.statement()

	elseJump := c.emitJump(chunk.OpJump)
	c.patchJump(thenJump)
	c.emit(chunk.OpPop)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.function.Chunk.Code)
	c.consume(token.LPAREN, "Expect '(' after 'while'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after condition.")

	exitJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emit(chunk.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emit(chunk.OpPop)
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPAREN, "Expect '(' after 'for'.")

	switch {
	case c.match(token.SEMI):
		// no initializer
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.function.Chunk.Code)
	exitJump := -1
	if !c.check(token.SEMI) {
		c.expression()
		c.consume(token.SEMI, "Expect ';' after loop condition.")
		exitJump = c.emitJump(chunk.OpJumpIfFalse)
		c.emit(chunk.OpPop)
	} else {
		c.advance()
	}

	if !c.check(token.RPAREN) {
		bodyJump := c.emitJump(chunk.OpJump)
		incrementStart := len(c.function.Chunk.Code)
		c.expression()
		c.emit(chunk.OpPop)
		c.consume(token.RPAREN, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	} else {
		c.advance()
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emit(chunk.OpPop)
	}

	c.endScope()
}
