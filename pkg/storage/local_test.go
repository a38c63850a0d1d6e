package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	st, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	info, err := st.Upload(ctx, "receipt.pdf", "application/pdf", bytes.NewBufferString("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, "receipt.pdf", info.Name)
	assert.Equal(t, int64(9), info.Size)

	t.Run("download round trips", func(t *testing.T) {
		r, got, err := st.Download(ctx, info.ID)
		require.NoError(t, err)
		defer r.Close()

		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "pdf bytes", string(data))
		assert.Equal(t, info.ID, got.ID)
	})

	t.Run("list returns uploads", func(t *testing.T) {
		infos, err := st.List(ctx)
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Equal(t, info.ID, infos[0].ID)
	})

	t.Run("unknown id errors", func(t *testing.T) {
		_, err := st.GetInfo(ctx, uuid.New())
		assert.Error(t, err)
	})

	t.Run("delete removes file and metadata", func(t *testing.T) {
		require.NoError(t, st.Delete(ctx, info.ID))
		_, err := st.GetInfo(ctx, info.ID)
		assert.Error(t, err)

		infos, err := st.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, infos)
	})
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"receipt.pdf", "receipt.pdf"},
		{"../../etc/passwd", "passwd"},
		{"my receipt.pdf", "my_receipt.pdf"},
		{"", "receipt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), "input %q", tt.in)
	}
}
