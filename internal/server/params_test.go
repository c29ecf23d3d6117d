package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringParam(t *testing.T) {
	params := map[string]interface{}{"s": "x", "n": 3.5, "nil": nil}
	assert.Equal(t, "x", StringParam(params, "s", "d"))
	assert.Equal(t, "3.5", StringParam(params, "n", "d"))
	assert.Equal(t, "d", StringParam(params, "nil", "d"))
	assert.Equal(t, "d", StringParam(params, "missing", "d"))
}

func TestIntParam(t *testing.T) {
	params := map[string]interface{}{
		"float": 250.0,
		"int":   7,
		"int64": int64(9),
		"str":   "12",
		"bad":   "twelve",
	}
	assert.Equal(t, 250, IntParam(params, "float", 0))
	assert.Equal(t, 7, IntParam(params, "int", 0))
	assert.Equal(t, 9, IntParam(params, "int64", 0))
	assert.Equal(t, 12, IntParam(params, "str", 0))
	assert.Equal(t, -1, IntParam(params, "bad", -1))
	assert.Equal(t, -1, IntParam(params, "missing", -1))
}

func TestBoolParam(t *testing.T) {
	params := map[string]interface{}{"b": false, "s": "true", "junk": "maybe"}
	assert.False(t, BoolParam(params, "b", true))
	assert.True(t, BoolParam(params, "s", false))
	assert.True(t, BoolParam(params, "junk", true))
	assert.True(t, BoolParam(params, "missing", true))
}

func TestHasParam(t *testing.T) {
	params := map[string]interface{}{"a": 0, "b": nil}
	assert.True(t, HasParam(params, "a"))
	assert.False(t, HasParam(params, "b"))
	assert.False(t, HasParam(params, "c"))
}
