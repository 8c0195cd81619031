package index

import (
	"os"

	"github.com/pkg/errors"
)

// writeFile writes a header (magic + version) followed by payload to
// path, matching every one of spec.md §6's per-array files.
func writeFile(path string, payload []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "index: create %s", path)
	}
	defer f.Close()

	if _, err := f.Write(Magic[:]); err != nil {
		return errors.Wrapf(err, "index: write magic %s", path)
	}
	var vbuf [4]byte
	le.PutUint32(vbuf[:], Version)
	if _, err := f.Write(vbuf[:]); err != nil {
		return errors.Wrapf(err, "index: write version %s", path)
	}
	if _, err := f.Write(payload); err != nil {
		return errors.Wrapf(err, "index: write payload %s", path)
	}
	return nil
}

// readHeader validates the magic/version prefix of raw (the full
// mmapped or read file contents) and returns the payload slice past the
// header.
func readHeader(path string, raw []byte) ([]byte, error) {
	if len(raw) < headerLen {
		return nil, errors.Wrapf(ErrTruncatedFile, "%s", path)
	}
	if [8]byte(raw[:8]) != Magic {
		return nil, errors.Wrapf(ErrBadMagic, "%s", path)
	}
	if v := le.Uint32(raw[8:12]); v != Version {
		return nil, errors.Wrapf(ErrVersionMismatch, "%s: got version %d, want %d", path, v, Version)
	}
	return raw[headerLen:], nil
}

// readFileFull reads an entire small file (used for .meta and .mphf,
// which are not mmapped since they are read once at Load and never
// accessed by offset during queries).
func readFileFull(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "index: read %s", path)
	}
	return readHeader(path, raw)
}
