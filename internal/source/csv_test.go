package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	pgzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "timestamp,product_name,expiry_date,quantity,unit_price,channel,payment_method\n" +
	"2025-06-01,bread,2025-12-01,3,2.00,Store,Cash\n" +
	"2025-06-01T09:30:00,cheese,2025-06-10,1,10.00,App,Visa\n"

func TestFileSource_Rows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	rows, err := NewFileSource(path).Rows(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 2, "header must be skipped")
	assert.Equal(t, "2025-06-01,bread,2025-12-01,3,2.00,Store,Cash", rows[0])
	assert.Equal(t, "2025-06-01T09:30:00,cheese,2025-06-10,1,10.00,App,Visa", rows[1])
}

func TestFileSource_RowsGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := pgzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	rows, err := NewFileSource(path).Rows(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "2025-06-01,bread,2025-12-01,3,2.00,Store,Cash", rows[0])
}

func TestFileSource_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("timestamp,product_name,expiry_date,quantity,unit_price,channel,payment_method\n"), 0o644))

	rows, err := NewFileSource(path).Rows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.csv")).Rows(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")
}
