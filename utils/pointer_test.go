package utils

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	t.Parallel()

	p := Ptr("value")

	assert.Equal(t, "value", *p)
}

func TestZeroIfNil(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ZeroIfNil[int](nil))
	assert.Equal(t, 3, ZeroIfNil(Ptr(3)))
}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, reflect.TypeOf(""), TypeOf[string]())
	assert.Equal(t, reflect.Interface, TypeOf[error]().Kind())
}
