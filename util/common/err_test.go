package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine())
	assert.NoError(t, Combine(nil, nil))

	a, b := errors.New("a"), errors.New("b")
	err := Combine(a, nil, b)
	assert.ErrorIs(t, err, a)
	assert.ErrorIs(t, err, b)
}

func TestRecover(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover("boom")
		panic("kaboom")
	})
}

func TestNewError(t *testing.T) {
	assert.EqualError(t, NewError("port", 80, "busy"), "port80busy")
	assert.EqualError(t, NewErrorf("port %d busy", 80), "port 80 busy")
}
