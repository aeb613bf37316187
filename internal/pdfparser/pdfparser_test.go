package pdfparser

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenspend/carbonstmt/internal/logging"
)

func TestExtractText_MissingFile(t *testing.T) {
	e := NewPDFExtractor(&logging.MockLogger{})

	_, err := e.ExtractText(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestMockExtractor(t *testing.T) {
	mock := &MockExtractor{MockText: "02/01/2024 SWIGGY ORDER 450.00 DR"}
	text, err := mock.ExtractText("ignored.pdf")
	require.NoError(t, err)
	assert.Equal(t, "02/01/2024 SWIGGY ORDER 450.00 DR", text)

	mock = &MockExtractor{MockErr: errors.New("corrupt file")}
	_, err = mock.ExtractText("ignored.pdf")
	assert.Error(t, err)
}
