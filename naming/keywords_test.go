package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordsFor(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"", "jpype-0.7"},
		{"0.7.5", "jpype-0.7"},
		{"0.6.3", "jpype-0.7"},
		{"1.0.0", "jpype-1"},
		{"1.5.0", "jpype-1"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			set, err := KeywordsFor(tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.want, set.Name)
		})
	}
}

func TestKeywordsForInvalidVersion(t *testing.T) {
	_, err := KeywordsFor("not-a-version")
	assert.Error(t, err)
}

func TestLegacyKeywordSet(t *testing.T) {
	set := DefaultKeywords()

	assert.Equal(t, 31, set.Words())
	assert.Equal(t, "print_", set.Escape("print"))
	assert.Equal(t, "None_", set.Escape("None"))
	assert.Equal(t, "exec_", set.Escape("exec"))
	assert.Equal(t, "wait_", set.Escape("wait"))
	assert.Equal(t, "notify", set.Escape("notify"))
	// not renamed by the legacy runtime
	assert.Equal(t, "with", set.Escape("with"))
}

func TestModernKeywordSet(t *testing.T) {
	set, err := KeywordsFor("1.4.1")
	require.NoError(t, err)

	assert.Equal(t, "with_", set.Escape("with"))
	assert.Equal(t, "async_", set.Escape("async"))
	assert.Equal(t, "True_", set.Escape("True"))
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"wait", true},
		{"_private", true},
		{"getX2", true},
		{"", false},
		{"2fast", false},
		{"access$000", false},
		{"lambda$run$0", false},
		{"class", false},
		{"None", false},
		{"class_", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIdentifier(tt.in))
		})
	}
}
