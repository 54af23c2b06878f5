package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{raw: "system", want: RoleSystem},
		{raw: "user", want: RoleUser},
		{raw: "assistant", want: RoleAssistant},
		{raw: "tool", wantErr: true},
		{raw: "User", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseRole(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSession(t *testing.T) {
	sess := NewSession("llama3.2:latest")

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "llama3.2:latest", sess.Model)
	assert.Empty(t, sess.Messages)
	assert.False(t, sess.StartTime.IsZero())

	other := NewSession("llama3.2:latest")
	assert.NotEqual(t, sess.ID, other.ID, "every session gets its own id")
}

func TestSessionAppendAndLastUser(t *testing.T) {
	sess := NewSession("m")
	assert.Empty(t, sess.LastUser())

	sess.Append(User("first"))
	sess.Append(Assistant("reply"))
	sess.Append(User("second"))

	require.Len(t, sess.Messages, 3)
	assert.Equal(t, "second", sess.LastUser())
}
