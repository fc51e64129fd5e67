package username

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "alice", Normalize("  Alice \n"))
	assert.Equal(t, "bob_1", Normalize("BOB_1"))
	assert.Equal(t, "", Normalize("   "))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		policy Policy
		want   string
		wantOK bool
	}{
		{name: "strict ok", raw: "Alice99", policy: Strict, want: "alice99", wantOK: true},
		{name: "strict trims", raw: "  bob  ", policy: Strict, want: "bob", wantOK: true},
		{name: "strict rejects underscore", raw: "bob_1", policy: Strict},
		{name: "strict rejects short", raw: "ab", policy: Strict},
		{name: "strict rejects long", raw: "abcdefghijklmnopqrstu", policy: Strict},
		{name: "strict rejects empty", raw: "", policy: Strict},
		{name: "strict rejects symbols", raw: "bob!", policy: Strict},
		{name: "relaxed accepts underscore", raw: "bob_1", policy: Relaxed, want: "bob_1", wantOK: true},
		{name: "relaxed rejects dash", raw: "bob-1", policy: Relaxed},
		{name: "relaxed rejects spaces inside", raw: "bo b", policy: Relaxed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.raw, tt.policy)
			if !tt.wantOK {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidUsername))
				assert.Contains(t, err.Error(), tt.policy.Rule())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToEmail(t *testing.T) {
	assert.Equal(t, "bob@users.chui.local", ToEmail("bob"))
}
