package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/svgstore/pkg/storage"
)

func TestValidateName(t *testing.T) {
	t.Parallel()

	valid := []string{"logo.svg", "my file.svg", "ünïcode.svg", ".hidden.svg", "no-extension", "a..b.svg"}
	for _, name := range valid {
		assert.NoError(t, storage.ValidateName(name), "name %q", name)
	}

	invalid := []string{"", ".", "..", "../x.svg", "dir/x.svg", `dir\x.svg`, "x\x00.svg"}
	for _, name := range invalid {
		assert.ErrorIs(t, storage.ValidateName(name), storage.ErrInvalidPath, "name %q", name)
	}
}

func TestHasSVGExtension(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"a.svg":     true,
		"A.SVG":     true,
		"a.Svg":     true,
		"a.svg.png": false,
		"svg":       false,
		"a.svgz":    false,
		"":          false,
	}
	for name, want := range tests {
		assert.Equal(t, want, storage.HasSVGExtension(name), "name %q", name)
	}
}

func TestContentTypeByName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, storage.SVGContentType, storage.ContentTypeByName("logo.SVG"))
	assert.Contains(t, storage.ContentTypeByName("notes.txt"), "text/plain")
	assert.Equal(t, "application/octet-stream", storage.ContentTypeByName("blob"))
}
