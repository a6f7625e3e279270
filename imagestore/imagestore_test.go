package imagestore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bestemiy/inkstudio/imagestore"
	"github.com/bestemiy/inkstudio/imagestore/local"
	"github.com/bestemiy/inkstudio/imagestore/remote"
)

func TestRemoteConfig_Enabled(t *testing.T) {
	assert.False(t, imagestore.RemoteConfig{}.Enabled())
	assert.False(t, imagestore.RemoteConfig{Endpoint: "https://blobs.example.com"}.Enabled())
	assert.False(t, imagestore.RemoteConfig{AccessKey: "AK"}.Enabled())
	assert.True(t, imagestore.RemoteConfig{Endpoint: "https://blobs.example.com", AccessKey: "AK"}.Enabled())
}

func TestNew_PicksLocalWithoutCredentials(t *testing.T) {
	store, cleanup, err := imagestore.New(imagestore.Config{Dir: t.TempDir()})
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &local.Store{}, store)
}

func TestNew_PicksRemoteWithCredentials(t *testing.T) {
	store, cleanup, err := imagestore.New(imagestore.Config{
		Dir: t.TempDir(),
		Remote: imagestore.RemoteConfig{
			Endpoint:  "https://blobs.example.com",
			AccessKey: "AK",
			SecretKey: "SK",
		},
	})
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &remote.Store{}, store)
}
