package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrivacyAccessibleTo(t *testing.T) {
	tests := []struct {
		name             string
		privacy          Privacy
		ownerCollege     string
		requesterCollege string
		want             bool
	}{
		{"public same college", PrivacyPublic, "X", "X", true},
		{"public different college", PrivacyPublic, "X", "Y", true},
		{"private same college", PrivacyPrivate, "X", "X", true},
		{"private different college", PrivacyPrivate, "X", "Y", false},
		{"private is case sensitive", PrivacyPrivate, "X", "x", false},
		{"private no normalization", PrivacyPrivate, "X ", "X", false},
		{"unknown value fails closed", Privacy("Friends"), "X", "X", false},
		{"empty value fails closed", Privacy(""), "X", "X", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.privacy.AccessibleTo(tt.ownerCollege, tt.requesterCollege)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrivacyValid(t *testing.T) {
	assert.True(t, PrivacyPublic.Valid())
	assert.True(t, PrivacyPrivate.Valid())
	assert.False(t, Privacy("Friends").Valid())
	assert.False(t, Privacy("public").Valid())
	assert.False(t, Privacy("").Valid())
}
