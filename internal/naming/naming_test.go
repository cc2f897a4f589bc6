package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raphi011/gw/internal/errs"
)

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		branch string
		dir    string
	}{
		{"main", "main"},
		{"feature/x", "feature__x"},
		{"test/feature", "test__feature"},
		{"user/team/ticket-123", "user__team__ticket-123"},
		{"fix-typo", "fix-typo"},
		{"a//b", "a____b"},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.dir, Encode(tt.branch))
			assert.Equal(t, tt.branch, Decode(Encode(tt.branch)))
		})
	}
}

func TestDecode_MarkerInBranchIsLossy(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAmbiguous("odd__name"))
	assert.Equal(t, "odd/name", Decode(Encode("odd__name")))
	assert.False(t, IsAmbiguous("feature/x"))
}

func TestValidateBranch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		branch string
		want   error
	}{
		{"feature/x", nil},
		{"main", nil},
		{"odd__name", errs.ErrAmbiguousBranchName},
		{"feature/", errs.ErrAmbiguousBranchName},
		{"/feature", errs.ErrAmbiguousBranchName},
		{"..", errs.ErrAmbiguousBranchName},
		{"  ", errs.ErrBranchNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			t.Parallel()
			err := ValidateBranch(tt.branch)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
