package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"golox/vm"
)

func TestVMCmdRunSourceSharesGlobalsAcrossCalls(t *testing.T) {
	var out, errOut bytes.Buffer
	machine := vm.New(&out)
	cmd := &vmCmd{}

	code := cmd.runSource(machine, "var a = 1;", &errOut)
	assert.Equal(t, exitSuccess, code)
	code = cmd.runSource(machine, "print a;", &errOut)
	assert.Equal(t, exitSuccess, code)
	assert.Equal(t, "1\n", out.String())
}

func TestVMCmdRunSourceReportsCompileError(t *testing.T) {
	var out, errOut bytes.Buffer
	machine := vm.New(&out)
	cmd := &vmCmd{}

	code := cmd.runSource(machine, "1 + ;", &errOut)
	assert.Equal(t, exitDataErr, code)
	assert.NotEmpty(t, errOut.String())
}

func TestVMCmdRunFileMissingPathIsIOError(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := &vmCmd{}
	code := cmd.runFile("/nonexistent/path.lox", &out, &errOut)
	assert.Equal(t, exitIOErr, code)
}
