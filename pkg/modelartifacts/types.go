package modelartifacts

import (
	"fmt"
	"path/filepath"
)

// Well-known artifact extensions for a model.
const (
	// ExtONNX is the source model graph.
	ExtONNX = "onnx"

	// ExtCalibYAML holds quantization calibration ranges.
	ExtCalibYAML = "calib_range.yaml"

	// ExtENF is the compiled program image produced by the compiler. It is
	// generated per compiler build rather than tracked by a descriptor
	// sidecar.
	ExtENF = "enf"
)

// DefaultExtensions is the extension set loaded for a model when the caller
// does not specify one.
var DefaultExtensions = []string{ExtONNX, ExtCalibYAML, ExtENF}

// IsGeneratedExtension reports whether artifacts with the given extension
// are produced by the local compiler build (and therefore located under the
// version-scoped generated directory instead of a descriptor sidecar).
func IsGeneratedExtension(ext string) bool {
	return ext == ExtENF
}

// ArtifactReference identifies one requested artifact. It is immutable once
// constructed.
type ArtifactReference struct {
	// LogicalPath is the natural on-disk location of the artifact. Its
	// descriptor sidecar, when one exists, lives at LogicalPath plus the
	// descriptor suffix.
	LogicalPath string

	// Extension is the artifact kind, e.g. "onnx".
	Extension string
}

// Basename returns the final path element of the logical path, which keys
// the artifact inside the version-namespaced cache.
func (r ArtifactReference) Basename() string {
	return filepath.Base(r.LogicalPath)
}

// ContentAddress locates an artifact inside a content-addressed store: the
// first two characters of its content hash name a directory, the remainder
// names the file. DeclaredSize is the byte length recorded by the
// descriptor and is enforced on every content-addressed or remote read.
type ContentAddress struct {
	PrefixDir    string
	SuffixName   string
	DeclaredSize uint64
}

// NewContentAddress splits a hex content hash into a two-character prefix
// directory and remainder filename.
func NewContentAddress(hash string, declaredSize uint64) (ContentAddress, error) {
	if len(hash) <= 2 {
		return ContentAddress{}, fmt.Errorf("content hash %q too short to address", hash)
	}
	return ContentAddress{
		PrefixDir:    hash[:2],
		SuffixName:   hash[2:],
		DeclaredSize: declaredSize,
	}, nil
}

// Key returns the store-relative path of the addressed object.
func (a ContentAddress) Key() string {
	return a.PrefixDir + "/" + a.SuffixName
}

// ResolvedArtifact is the result of resolving one ArtifactReference.
type ResolvedArtifact struct {
	Extension string
	Bytes     []byte
}

// ArtifactBundle maps extension to artifact bytes for one model name. Its
// keys are exactly the requested extension set.
type ArtifactBundle map[string][]byte
