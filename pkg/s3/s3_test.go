package s3

import (
	"testing"

	"buddyboost/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectURL_AWS(t *testing.T) {
	url := objectURL("", true, "eu-west-1", "media", "posts/u1/a.png")
	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/posts/u1/a.png", url)
}

func TestObjectURL_DefaultRegion(t *testing.T) {
	url := objectURL("", true, "", "media", "a.png")
	assert.Equal(t, "https://media.s3.us-east-1.amazonaws.com/a.png", url)
}

func TestObjectURL_MinIO(t *testing.T) {
	assert.Equal(t, "http://minio:9000/media/a.png", objectURL("http://minio:9000", false, "us-east-1", "media", "a.png"))
	assert.Equal(t, "https://minio.local/media/a.png", objectURL("minio.local", true, "us-east-1", "media", "a.png"))
}

func TestNewClient_MinIOConfig(t *testing.T) {
	cfg := &config.Config{
		AWSRegion:    "us-east-1",
		AWSEndpoint:  "http://localhost:9000",
		S3UseSSL:     "false",
		S3BucketName: "buddyboost",
	}

	client, err := NewClient(cfg)
	require.NoError(t, err)

	assert.Equal(t, "buddyboost", client.bucket)
	assert.True(t, *client.s3Client.Config.S3ForcePathStyle)
	assert.True(t, *client.s3Client.Config.DisableSSL)
}

func TestObjectKey(t *testing.T) {
	client, err := NewClient(&config.Config{
		AWSRegion:    "us-east-1",
		AWSEndpoint:  "http://localhost:9000",
		S3UseSSL:     "false",
		S3BucketName: "buddyboost",
	})
	require.NoError(t, err)

	key, ok := client.ObjectKey("http://localhost:9000/buddyboost/posts/u1/a.png")
	assert.True(t, ok)
	assert.Equal(t, "posts/u1/a.png", key)

	_, ok = client.ObjectKey("http://localhost:9000/other-bucket/posts/u1/a.png")
	assert.False(t, ok)
	_, ok = client.ObjectKey("https://elsewhere.test/a.png")
	assert.False(t, ok)
	_, ok = client.ObjectKey("http://localhost:9000/buddyboost/")
	assert.False(t, ok)
}

func TestObjectKey_AWS(t *testing.T) {
	client, err := NewClient(&config.Config{AWSRegion: "eu-west-1", S3BucketName: "media"})
	require.NoError(t, err)

	key, ok := client.ObjectKey("https://media.s3.eu-west-1.amazonaws.com/posts/u1/a.png")
	assert.True(t, ok)
	assert.Equal(t, "posts/u1/a.png", key)
}
