package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage(t *testing.T) {
	stub := NewStubObjectStorage()
	ctx := context.Background()

	t.Run("upload url", func(t *testing.T) {
		url, expiresAt, err := stub.GenerateUploadURL(ctx, "orgs/1/payment-proofs/2", "image/jpeg", 10*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "/upload/orgs/1/payment-proofs/2")
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)
	})

	t.Run("download url", func(t *testing.T) {
		url, _, err := stub.GenerateDownloadURL(ctx, "orgs/1/payment-proofs/2", 10*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "/download/orgs/1/payment-proofs/2")
	})

	t.Run("object exists", func(t *testing.T) {
		exists, err := stub.ObjectExists(ctx, "any-key")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		_, _, err := stub.GenerateUploadURL(ctx, "", "image/jpeg", time.Minute)
		assert.Error(t, err)

		_, err = stub.ObjectExists(ctx, "")
		assert.Error(t, err)

		assert.Error(t, stub.DeleteObject(ctx, ""))
	})
}
