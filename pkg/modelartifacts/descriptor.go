package modelartifacts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DescriptorSuffix is appended to an artifact's logical path to name its
// descriptor sidecar.
const DescriptorSuffix = ".dvc"

// descriptor mirrors the sidecar file layout: a YAML document whose first
// output entry records the content hash and byte size of the artifact.
type descriptor struct {
	Outs []descriptorOut `yaml:"outs"`
}

type descriptorOut struct {
	MD5  string `yaml:"md5"`
	Size *int64 `yaml:"size"`
}

// ParseDescriptor loads the descriptor sidecar next to logicalPath and
// returns the content address it declares. It is pure and performs no
// caching; any missing file, unparseable document, or absent required field
// is reported as ErrDescriptorMalformed.
func ParseDescriptor(logicalPath string) (ContentAddress, error) {
	sidecar := logicalPath + DescriptorSuffix

	raw, err := os.ReadFile(sidecar)
	if err != nil {
		return ContentAddress{}, fmt.Errorf("%w: read %s: %v", ErrDescriptorMalformed, sidecar, err)
	}

	var desc descriptor
	if err := yaml.Unmarshal(raw, &desc); err != nil {
		return ContentAddress{}, fmt.Errorf("%w: parse %s: %v", ErrDescriptorMalformed, sidecar, err)
	}

	if len(desc.Outs) == 0 {
		return ContentAddress{}, fmt.Errorf("%w: %s has no outs entry", ErrDescriptorMalformed, sidecar)
	}

	out := desc.Outs[0]
	if out.Size == nil {
		return ContentAddress{}, fmt.Errorf("%w: %s missing size field", ErrDescriptorMalformed, sidecar)
	}
	if *out.Size < 0 {
		return ContentAddress{}, fmt.Errorf("%w: %s declares negative size %d", ErrDescriptorMalformed, sidecar, *out.Size)
	}

	addr, err := NewContentAddress(out.MD5, uint64(*out.Size))
	if err != nil {
		return ContentAddress{}, fmt.Errorf("%w: %s: %v", ErrDescriptorMalformed, sidecar, err)
	}
	return addr, nil
}
