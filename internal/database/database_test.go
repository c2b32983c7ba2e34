package database

import (
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr[T any](v T) *T { return &v }

func TestNewDB_DirectoryCreation(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "nested", "dir", "test.db")
	logger := zerolog.Nop()

	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, dbPath)
	assert.Equal(t, dbPath, db.Path())
}

func TestNewDB_NilLogger(t *testing.T) {
	db, err := NewDB(":memory:", nil)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.PingContext(context.Background()))
}

func TestNewDB_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "homestay.db")
	ctx := context.Background()

	db, err := NewDB(dbPath, nil)
	require.NoError(t, err)
	_, err = db.CreateService(ctx, serviceInput("Renovation"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDB(dbPath, nil)
	require.NoError(t, err)
	defer db.Close()

	n, err := db.CountServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestListCodec(t *testing.T) {
	t.Run("NilIsNull", func(t *testing.T) {
		v, err := encodeList(nil)
		require.NoError(t, err)
		assert.False(t, v.Valid)
	})

	t.Run("EmptyIsArray", func(t *testing.T) {
		v, err := encodeList([]string{})
		require.NoError(t, err)
		assert.Equal(t, sql.NullString{String: "[]", Valid: true}, v)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		in := []string{"Rice Fields", "Dù Dẻ", `quote"d`, ""}
		v, err := encodeList(in)
		require.NoError(t, err)

		out, ok := decodeList(v)
		assert.True(t, ok)
		assert.Equal(t, in, out)
	})

	t.Run("NullReadsEmpty", func(t *testing.T) {
		out, ok := decodeList(sql.NullString{})
		assert.True(t, ok)
		assert.Equal(t, []string{}, out)
	})

	t.Run("JSONNullReadsEmpty", func(t *testing.T) {
		out, ok := decodeList(sql.NullString{String: "null", Valid: true})
		assert.True(t, ok)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("MalformedReadsEmpty", func(t *testing.T) {
		out, ok := decodeList(sql.NullString{String: "not json", Valid: true})
		assert.False(t, ok)
		assert.Equal(t, []string{}, out)
	})
}

func TestMalformedListColumn(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	p, err := db.CreateProject(ctx, projectInput("camf"))
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `UPDATE projects SET tags = 'oops' WHERE id = ?`, p.ID)
	require.NoError(t, err)

	got, err := db.GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{}, got.Tags)
	assert.Equal(t, p.Images, got.Images)
}
