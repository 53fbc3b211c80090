package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	def, ok := Lookup("kMDItemFSSize")
	require.True(t, ok)
	assert.Equal(t, TypeNumber, def.Type)
	assert.Equal(t, CategoryFileSystem, def.Category)

	_, ok = Lookup("kMDItemDoesNotExist")
	assert.False(t, ok)
}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TypeDate, TypeOf("kMDItemFSCreationDate"))
	assert.Equal(t, TypeBool, TypeOf("kMDItemHasAlphaChannel"))
	assert.Equal(t, TypeArray, TypeOf("kMDItemAuthors"))
	assert.Equal(t, TypeUnknown, TypeOf("kMDItemDoesNotExist"))
}

func TestSearch(t *testing.T) {
	t.Parallel()

	matches := Search("pixel")
	require.NotEmpty(t, matches)
	for _, def := range matches {
		assert.Contains(t, def.Name, "Pixel")
	}

	// Description text is searched too.
	matches = Search("camera")
	require.NotEmpty(t, matches)

	assert.Empty(t, Search("nbdkfjbdkjfbdkj"))
}

func TestByCategory(t *testing.T) {
	t.Parallel()

	images := ByCategory(CategoryImage)
	require.NotEmpty(t, images)

	for _, def := range images {
		assert.Equal(t, CategoryImage, def.Category)
	}

	// Sorted by name.
	for i := 1; i < len(images); i++ {
		assert.Less(t, images[i-1].Name, images[i].Name)
	}
}

func TestNames_uniqueAndSorted(t *testing.T) {
	t.Parallel()

	names := Names()
	require.NotEmpty(t, names)

	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		_, dup := seen[name]
		require.False(t, dup, "duplicate attribute %s", name)
		seen[name] = struct{}{}

		if i > 0 {
			require.Less(t, names[i-1], name)
		}
	}
}
