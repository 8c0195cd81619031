package index

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// mmapReadOnly maps the whole of path into memory read-only, in the
// style of agentic-research-mache's control.go (unix.Mmap on an open
// file's descriptor, PROT_READ|PROT_WRITE there for a shared read-write
// region; here PROT_READ/MAP_SHARED since the index is never mutated
// after Build). The returned closer unmaps the region.
func mmapReadOnly(path string) (data []byte, closer func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "index: open %s", path)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "index: stat %s", path)
	}
	size := st.Size()
	if size == 0 {
		return nil, nil, errors.Wrapf(ErrTruncatedFile, "%s", path)
	}

	data, err = unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "index: mmap %s", path)
	}
	closer = func() error { return unix.Munmap(data) }
	return data, closer, nil
}
