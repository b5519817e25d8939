package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMarkdown(t *testing.T) {
	res, err := FormatMarkdown("**hello**")
	require.NoError(t, err)
	assert.Contains(t, res, "hello")
}

func TestFormatMarkdown_Hangul(t *testing.T) {
	res, err := FormatMarkdown("정말?")
	require.NoError(t, err)
	assert.Contains(t, res, "정말?")
}
