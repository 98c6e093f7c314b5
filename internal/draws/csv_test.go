package draws

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `# stan_version_major = 2
# method = sample
chain__,lp__,xi[1,1],xi[1,2]
1,-10.5,0.25,-1.5
1,-11.0,0.35,-1.4
2,-10.1,1.25,0.5
# elapsed time: 1.2 seconds
`

func TestReadCSVSkipsCommentsAndParsesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draws.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	table, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"chain__", "lp__", "xi[1,1]", "xi[1,2]"}, table.Columns)
	require.Len(t, table.Rows, 3)
	assert.InDelta(t, -10.5, table.Rows[0][1], 1e-12)
	assert.InDelta(t, 0.5, table.Rows[2][3], 1e-12)

	chains, err := table.ChainIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, chains)
	assert.Equal(t, []int{0, 1}, table.ChainRows(1))
	assert.Equal(t, []int{2}, table.ChainRows(2))
}

func TestReadCSVGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draws.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	table, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 3)
}

func TestReadCSVRejectsNonNumericCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("chain__,a\n1,oops\n"), 0o644))

	_, err := ReadCSV(path)
	assert.Error(t, err)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(src, []byte(sampleCSV), 0o644))
	table, err := ReadCSV(src)
	require.NoError(t, err)

	dst := filepath.Join(dir, "out.csv")
	require.NoError(t, WriteCSV(dst, table))

	back, err := ReadCSV(dst)
	require.NoError(t, err)
	assert.Equal(t, table.Columns, back.Columns)
	assert.Equal(t, table.Rows, back.Rows)
}
