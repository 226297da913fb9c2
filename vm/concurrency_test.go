package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpawnWaitReturnsResult(t *testing.T) {
	out, _ := runSource(t, `: work 6 7 * ; ' work spawn wait .`)
	assert.Equal(t, "42 ", out)
}

func TestSpawnChildStartsWithEmptyStack(t *testing.T) {
	// The parent's stack holds extra junk; the spawned child must not see it.
	out, _ := runSource(t, `: work depth ; 1 2 3 ' work spawn wait .`)
	assert.Equal(t, "0 ", out)
}

func TestWaitAllDoesNotDeadlock(t *testing.T) {
	// wait-all has no data-stack effect; it must return once every spawned
	// worker has finished, leaving the spawned id for the caller to use.
	out, _ := runSource(t, `: work 1 ; ' work spawn wait-all .`)
	assert.Regexp(t, `^\d+ $`, out)
}

func TestWaitOnInvalidIDReturnsZero(t *testing.T) {
	out, _ := runSource(t, `999 wait .`)
	assert.Equal(t, "0 ", out)
}

func TestNprocPushesPositive(t *testing.T) {
	out, m := runSource(t, `nproc .`)
	assert.NotEmpty(t, out)
	assert.Regexp(t, `^[1-9][0-9]* $`, out)
	_ = m
}
