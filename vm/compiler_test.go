package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlusLoopNegativeStep(t *testing.T) {
	out, _ := runSource(t, ": down10 0 10 do i . -1 +loop ; down10")
	assert.Equal(t, "10 9 8 7 6 5 4 3 2 1 ", out)
}

func TestPlusLoopStepCrossesLimit(t *testing.T) {
	// limit 10, start 0, step 3: 0,3,6,9, next would be 12 which crosses 10
	out, _ := runSource(t, ": skip 10 0 do i . 3 +loop ; skip")
	assert.Equal(t, "0 3 6 9 ", out)
}

func TestNestedDoLoopIJ(t *testing.T) {
	out, _ := runSource(t, ": grid 2 0 do 2 0 do j . i . loop loop ; grid")
	assert.Equal(t, "0 0 0 1 1 0 1 1 ", out)
}

func TestQDoSkipsWhenEqual(t *testing.T) {
	out, _ := runSource(t, ": maybe 0 0 ?do i . loop ; maybe")
	assert.Equal(t, "", out)
}

func TestOverAnd2Dup(t *testing.T) {
	out, _ := runSource(t, "1 2 over .s")
	assert.Equal(t, "<3> 1 2 1 ", out)

	out, _ = runSource(t, "1 2 2dup .s")
	assert.Equal(t, "<4> 2 1 2 1 ", out)
}

func TestPickStandard(t *testing.T) {
	out, _ := runSource(t, "1 2 3 2 pick .")
	assert.Equal(t, "1 ", out)
}

func TestIfElseForwardBranch(t *testing.T) {
	out, _ := runSource(t, `: test if ." yes" else ." no" then ; 0 test -1 test`)
	assert.Equal(t, "noyes", out)
}
