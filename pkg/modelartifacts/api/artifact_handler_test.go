package api_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts"
	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts/api"
)

const (
	testTag  = "0.9.0_e626c458c"
	testHash = "ab12cd34ab12cd34ab12cd34ab12cd34"
)

// newTestServer serves one model whose artifacts are all resolvable from
// checked-out files.
func newTestServer(t *testing.T, name string) (*httptest.Server, map[string][]byte) {
	t.Helper()

	dataDir := t.TempDir()
	contents := map[string][]byte{
		modelartifacts.ExtONNX:      []byte("onnx graph bytes"),
		modelartifacts.ExtCalibYAML: []byte("ranges: {}"),
		modelartifacts.ExtENF:       []byte("compiled program image"),
	}

	modelDir := filepath.Join(dataDir, name)
	require.NoError(t, os.MkdirAll(modelDir, 0755))
	for _, ext := range []string{modelartifacts.ExtONNX, modelartifacts.ExtCalibYAML} {
		logical := filepath.Join(modelDir, name+"."+ext)
		sidecar := fmt.Sprintf("outs:\n- md5: %s\n  size: %d\n", testHash, len(contents[ext]))
		require.NoError(t, os.WriteFile(logical+modelartifacts.DescriptorSuffix, []byte(sidecar), 0644))
		require.NoError(t, os.WriteFile(logical, contents[ext], 0644))
	}

	generatedDir := filepath.Join(dataDir, "generated", testTag)
	require.NoError(t, os.MkdirAll(generatedDir, 0755))
	generated := filepath.Join(generatedDir, name+modelartifacts.DefaultGeneratedSuffix+"."+modelartifacts.ExtENF)
	require.NoError(t, os.WriteFile(generated, contents[modelartifacts.ExtENF], 0644))

	provider := modelartifacts.StaticVersion(testTag)
	resolver, err := modelartifacts.NewResolver(
		modelartifacts.WithCacheDir(t.TempDir()),
		modelartifacts.WithVersionProvider(provider),
	)
	require.NoError(t, err)
	loader, err := modelartifacts.NewLoader(resolver, dataDir,
		modelartifacts.WithLoaderVersionProvider(provider))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Mount("/models", api.NewArtifactHandler(loader).Routes())
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return server, contents
}

func TestGetArtifact(t *testing.T) {
	server, contents := newTestServer(t, "mlcommons_resnet50")

	t.Run("ReturnsBytes", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/models/mlcommons_resnet50/artifacts/onnx")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/octet-stream", resp.Header.Get("Content-Type"))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, contents[modelartifacts.ExtONNX], body)
	})

	t.Run("DottedExtension", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/models/mlcommons_resnet50/artifacts/calib_range.yaml")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, contents[modelartifacts.ExtCalibYAML], body)
	})

	t.Run("UnknownModel", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/models/no-such-model/artifacts/onnx")
		require.NoError(t, err)
		defer resp.Body.Close()

		// An unknown model has no descriptor sidecar to locate.
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestGetBundle(t *testing.T) {
	server, contents := newTestServer(t, "yolox_l")

	resp, err := http.Get(server.URL + "/models/yolox_l")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var manifest api.BundleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&manifest))

	assert.Equal(t, "yolox_l", manifest.Name)
	require.Len(t, manifest.Artifacts, len(modelartifacts.DefaultExtensions))
	for _, artifact := range manifest.Artifacts {
		assert.Equal(t, int64(len(contents[artifact.Extension])), artifact.Size,
			"extension %s", artifact.Extension)
	}
}

func TestGetBundle_UnknownModel(t *testing.T) {
	server, _ := newTestServer(t, "yolox_l")

	resp, err := http.Get(server.URL + "/models/missing-model")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
