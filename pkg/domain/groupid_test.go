package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGroupID(t *testing.T) {
	tests := []struct {
		id   string
		kind GroupIDErrorKind
		ok   bool
	}{
		{id: "left", ok: true},
		{id: "L-01", ok: true},
		{id: "", kind: GroupIDEmpty},
		{id: "a[[b", kind: GroupIDContainsOpen},
		{id: "a]]b", kind: GroupIDContainsClose},
	}

	for _, tt := range tests {
		err := ValidateGroupID(tt.id)
		if tt.ok {
			assert.NoError(t, err, tt.id)
			continue
		}
		var gErr *GroupIDError
		require.True(t, errors.As(err, &gErr), tt.id)
		assert.Equal(t, tt.kind, gErr.Kind)
	}
}

func TestReplaceGroupID(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		changed bool
	}{
		{"[[right]]_leg", "[[left]]_leg", true},
		{"base_to_[[right]]_leg", "base_to_[[left]]_leg", true},
		{`[\[right]\]_[[front]]_wheel`, `[\[right]\]_[[left]]_wheel`, true},
		{"plain", "plain", false},
		{"[[a]]_[[b]]", "[[a]]_[[b]]", false},
		{"half[[open", "half[[open", false},
	}

	for _, tt := range tests {
		got, changed := ReplaceGroupID(tt.name, "left")
		assert.Equal(t, tt.want, got, tt.name)
		assert.Equal(t, tt.changed, changed, tt.name)
	}
}

func TestTagGroupID(t *testing.T) {
	assert.Equal(t, "wheel_[[back]]", TagGroupID("wheel", "back"))
	assert.Equal(t, "[[back]]_wheel", TagGroupID("[[front]]_wheel", "back"))
	assert.Equal(t, "[[a]]_[[b]]", TagGroupID("[[a]]_[[b]]", "back"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "right_leg", DisplayName("[[right]]_leg"))
	assert.Equal(t, "[[right]]_back_wheel", DisplayName(`[\[right]\]_[[back]]_wheel`))
	assert.Equal(t, "right_back_wheel", DisplayName(DisplayName(`[\[right]\]_[[back]]_wheel`)))
	assert.Equal(t, "plain", DisplayName("plain"))
}

func TestGroupID(t *testing.T) {
	id, ok := GroupID("base_to_[[right]]_leg")
	assert.True(t, ok)
	assert.Equal(t, "right", id)

	_, ok = GroupID("base")
	assert.False(t, ok)
}
