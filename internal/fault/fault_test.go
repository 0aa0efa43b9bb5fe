package fault

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpersWrapTheirCategory(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category error
		contains string
	}{
		{"invalid argument", InvalidArgument("max_chars must be greater than zero, got %d", 0), ErrInvalidArgument, "got 0"},
		{"not found", NotFound("tarea 123"), ErrNotFound, "tarea 123"},
		{"unsupported type", UnsupportedType("tool.exe"), ErrUnsupportedType, "tool.exe"},
		{"extraction", Extraction("doc.pdf", errors.New("bad xref")), ErrExtraction, "bad xref"},
		{"binary", BinaryOrUnsupported("blob.txt"), ErrBinaryOrUnsupported, "blob.txt"},
		{"missing field", MissingField("objetivo"), ErrMissingField, "objetivo"},
		{"dependency", DependencyUnavailable("exportación PDF"), ErrDependencyUnavailable, "exportación PDF"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, errors.Is(tc.err, tc.category))
			assert.Contains(t, tc.err.Error(), tc.contains)
		})
	}
}

func TestCategoriesAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(NotFound("x"), ErrInvalidArgument))
	assert.False(t, errors.Is(MissingField("x"), ErrNotFound))
}
