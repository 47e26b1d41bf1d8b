package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		in      string
		want    Visibility
		wantErr bool
	}{
		{in: "", want: VisibilityPrivate},
		{in: "private", want: VisibilityPrivate},
		{in: "PUBLIC", want: VisibilityPublic},
		{in: " public ", want: VisibilityPublic},
		{in: "shared", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVisibility(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocument_SizeKiB(t *testing.T) {
	assert.Equal(t, int64(2), (&Document{Size: 2048}).SizeKiB())
	assert.Equal(t, int64(0), (&Document{Size: 1023}).SizeKiB())
	assert.Equal(t, int64(1), (&Document{Size: 2047}).SizeKiB())
	assert.Equal(t, int64(0), (&Document{Size: 0}).SizeKiB())
}

func TestDocument_VisibleTo(t *testing.T) {
	owner := Principal{UserID: "owner", Username: "alice"}
	other := Principal{UserID: "other", Username: "bob"}

	private := &Document{OwnerID: "owner", Visibility: VisibilityPrivate}
	public := &Document{OwnerID: "owner", Visibility: VisibilityPublic}

	assert.True(t, private.VisibleTo(owner))
	assert.False(t, private.VisibleTo(other))
	assert.False(t, private.VisibleTo(Anonymous))

	assert.True(t, public.VisibleTo(owner))
	assert.True(t, public.VisibleTo(other))
	assert.True(t, public.VisibleTo(Anonymous))
}
