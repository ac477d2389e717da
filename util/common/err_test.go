package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine(nil, nil))

	e1 := errors.New("one")
	err := Combine(nil, e1)
	assert.ErrorIs(t, err, e1)
}

func TestNewErrorf(t *testing.T) {
	assert.EqualError(t, NewErrorf("bad id: %d", 7), "bad id: 7")
	assert.EqualError(t, NewError("port ", 80), "port 80")
}

func TestRecover(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover("worker")
		panic("boom")
	})
}
