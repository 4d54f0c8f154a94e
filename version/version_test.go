package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion_Default(t *testing.T) {
	assert.NotEmpty(t, Version())
}

func TestString_IncludesName(t *testing.T) {
	s := String()
	assert.True(t, strings.HasPrefix(s, "arenad version "))
}

func TestBuildAttrs_AlternatingPairs(t *testing.T) {
	attrs := BuildAttrs()
	assert.Zero(t, len(attrs)%2, "attrs must be key/value pairs")
	assert.Equal(t, "version", attrs[0])
}
