package cache

import (
	"testing"
	"time"

	"LocalChat/internal/chat"

	"github.com/stretchr/testify/assert"
)

func TestKeyDependsOnEveryMessage(t *testing.T) {
	base := []chat.Message{
		chat.System("sys"),
		chat.User("Hi"),
	}

	assert.Equal(t, Key(base), Key(base), "key is deterministic")

	differentContent := []chat.Message{
		chat.System("sys"),
		chat.User("Hi!"),
	}
	assert.NotEqual(t, Key(base), Key(differentContent))

	differentRole := []chat.Message{
		chat.System("sys"),
		chat.Assistant("Hi"),
	}
	assert.NotEqual(t, Key(base), Key(differentRole))

	longer := append(append([]chat.Message(nil), base...), chat.Assistant("Hello"))
	assert.NotEqual(t, Key(base), Key(longer))
}

func TestGetPut(t *testing.T) {
	c := New(0)

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Put("k", "response")
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "response", got)
}

func TestTTLExpiry(t *testing.T) {
	c := New(time.Nanosecond)

	c.Put("k", "response")
	time.Sleep(time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok, "stale entry is dropped")

	_, ok = c.entries.Load("k")
	assert.False(t, ok, "expired entry is deleted on read")
}
