package tokens

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding approximates the tokenizers of the hosted chat models.
const DefaultEncoding = "cl100k_base"

// Counter counts prompt tokens. The BPE ranks are loaded on first use,
// which downloads them unless TIKTOKEN_CACHE_DIR already holds a copy.
type Counter struct {
	encoding string

	once sync.Once
	enc  *tiktoken.Tiktoken
	err  error
}

func NewCounter(encoding string) *Counter {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	return &Counter{encoding: encoding}
}

func (c *Counter) Count(text string) (int, error) {
	c.once.Do(func() {
		c.enc, c.err = tiktoken.GetEncoding(c.encoding)
	})
	if c.err != nil {
		return 0, fmt.Errorf("load %s encoding: %w", c.encoding, c.err)
	}

	return len(c.enc.Encode(text, nil, nil)), nil
}
