package prompt

import (
	"testing"

	"LocalChat/internal/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrependsSystemMessage(t *testing.T) {
	b := NewBuilder("be terse")
	history := []chat.Message{
		chat.User("Hi"),
		chat.Assistant("Hello"),
		chat.User("How are you?"),
	}

	got := b.Build(history)

	require.Len(t, got, len(history)+1)
	assert.Equal(t, chat.RoleSystem, got[0].Role)
	assert.Equal(t, "be terse", got[0].Content)
	assert.Equal(t, history, got[1:])
}

func TestBuildEmptyHistory(t *testing.T) {
	got := NewBuilder("sys").Build(nil)

	require.Len(t, got, 1)
	assert.Equal(t, chat.System("sys"), got[0])
}

func TestBuildDoesNotMutateHistory(t *testing.T) {
	history := []chat.Message{chat.User("Hi")}
	NewBuilder("sys").Build(history)

	assert.Equal(t, []chat.Message{chat.User("Hi")}, history)
}

func TestNewBuilderDefaultSystem(t *testing.T) {
	b := NewBuilder("")
	assert.Equal(t, DefaultSystem, b.System)
}
