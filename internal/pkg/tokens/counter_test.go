package tokens

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCounter_DefaultEncoding(t *testing.T) {
	assert.Equal(t, DefaultEncoding, NewCounter("").encoding)
	assert.Equal(t, "p50k_base", NewCounter("p50k_base").encoding)
}

func TestCounter_UnknownEncoding(t *testing.T) {
	c := NewCounter("no_such_encoding")

	_, err := c.Count("hello world")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load no_such_encoding encoding")

	// the load result is kept
	_, again := c.Count("hello again")
	assert.Equal(t, err, again)
}

func TestCounter_Count(t *testing.T) {
	if os.Getenv("TIKTOKEN_CACHE_DIR") == "" {
		t.Skip("TIKTOKEN_CACHE_DIR not set, skipping tokenizer test")
	}

	c := NewCounter(DefaultEncoding)

	n, err := c.Count("hello world")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = c.Count("")
	require.NoError(t, err)
	assert.Zero(t, n)
}
