package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func callMain(t *testing.T, args ...string) int {
	t.Helper()
	exitCode := 0
	oldExit, oldArgs := exit, os.Args
	defer func() { exit, os.Args = oldExit, oldArgs }()

	exit = func(code int) { exitCode = code }
	os.Args = append([]string{"gazette"}, args...)
	main()
	return exitCode
}

func TestUnknownCommandExits(t *testing.T) {
	t.Setenv("GAZETTE_STORAGE_BADGER_PATH", t.TempDir())
	assert.Equal(t, 1, callMain(t, "frobnicate"))
}

func TestBadConfigExits(t *testing.T) {
	t.Setenv("GAZETTE_LOG_LEVEL", "chatty")
	assert.Equal(t, 1, callMain(t, "version"))
}
