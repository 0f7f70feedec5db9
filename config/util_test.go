package config

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParseOutputMode(t *testing.T) {
	full, _ := ParseOutputMode("full")
	brief, _ := ParseOutputMode("brief")
	assert.Equal(t, Full, full)
	assert.Equal(t, Brief, brief)

	nothing, err := ParseOutputMode("verbose")
	assert.Error(t, err)
	assert.Equal(t, OutputMode(""), nothing)
}
