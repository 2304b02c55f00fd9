package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestS3Fetcher_BasicConfiguration tests the configuration and creation of
// the S3 fetcher
func TestS3Fetcher_BasicConfiguration(t *testing.T) {
	t.Run("EmptyBucket", func(t *testing.T) {
		config := S3Config{
			Region: "us-east-1",
			Bucket: "",
		}
		_, err := NewS3Fetcher(config)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket name is required")
	})

	t.Run("DefaultRegion", func(t *testing.T) {
		config := S3Config{
			Bucket:          "artifact-bucket",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
		}
		fetcher, err := NewS3Fetcher(config)
		// May error due to environment, but never due to a missing bucket
		if err != nil {
			assert.NotContains(t, err.Error(), "bucket name is required")
		} else {
			assert.NotNil(t, fetcher)
			assert.Equal(t, "artifact-bucket", fetcher.bucket)
		}
	})

	t.Run("CustomEndpointWithPathStyle", func(t *testing.T) {
		config := S3Config{
			Bucket:          "artifact-bucket",
			Prefix:          "furiosa-artifacts",
			Endpoint:        "http://localhost:9000",
			AccessKeyID:     "minioadmin",
			SecretAccessKey: "minioadmin",
			UsePathStyle:    true,
		}
		fetcher, err := NewS3Fetcher(config)
		if err == nil {
			assert.NotNil(t, fetcher)
			assert.Equal(t, "furiosa-artifacts", fetcher.prefix)
		}
	})
}
