package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingleLine(t *testing.T) {
	assert.Equal(t, "plain text", SingleLine("plain text"))
	assert.Equal(t, "a b c", SingleLine("a\nb\r\n\tc\n"))
	assert.Equal(t, "", SingleLine("\n"))
}

func TestSingleLineIsIndependentOfLineBreaks(t *testing.T) {
	assert.Equal(t, "a b | c", SingleLine("a  b | c"))
	assert.Equal(t, SingleLine("a  b | c"), SingleLine("a  b | c\n"))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty())
	assert.Equal(t, "", FirstNonEmpty("", " "))
}
