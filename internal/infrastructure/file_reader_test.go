package infrastructure

import (
	"data-visualizer/internal/domain"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSourceWithHeader(t *testing.T) {
	path := writeFile(t, "trend.txt", "day\tsales\n0 0\n1 2\n\n# comment\n2\t4\textra\n")

	src, err := NewTXTFileReader(zaptest.NewLogger(t)).ReadSource(path)
	require.NoError(t, err)

	assert.Equal(t, []domain.DataPoint{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 4}}, src.Data())
	x, y := src.Labels()
	assert.Equal(t, "day", x)
	assert.Equal(t, "sales", y)
}

func TestReadSourceWithoutHeader(t *testing.T) {
	path := writeFile(t, "plain.txt", "1.5 -2\n3e2 0.25\n")

	src, err := NewTXTFileReader(zaptest.NewLogger(t)).ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.DataPoint{{X: 1.5, Y: -2}, {X: 300, Y: 0.25}}, src.Data())
	assert.Empty(t, src.XLabel)
}

func TestReadSourceEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.txt", "")

	src, err := NewTXTFileReader(zaptest.NewLogger(t)).ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, 0, src.Len())
}

func TestReadSourceSkipsNonFinite(t *testing.T) {
	path := writeFile(t, "nan.txt", "0 1\n1 NaN\n2 +Inf\n3 4\n")

	src, err := NewTXTFileReader(zaptest.NewLogger(t)).ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.DataPoint{{X: 0, Y: 1}, {X: 3, Y: 4}}, src.Data())
}

func TestReadSourceInvalid(t *testing.T) {
	reader := NewTXTFileReader(zaptest.NewLogger(t))

	cases := map[string]string{
		"one column":       "0 1\n2\n",
		"text after data":  "0 1\nfoo bar\n",
		"second header":    "x y\na b\n",
	}
	for name, content := range cases {
		path := writeFile(t, "bad.txt", content)
		_, err := reader.ReadSource(path)
		assert.True(t, errors.Is(err, domain.ErrInvalidFileFormat), name)
	}

	_, err := reader.ReadSource(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
