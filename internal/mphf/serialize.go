package mphf

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/ekg/gyeet/internal/bitvec"
)

var le = binary.LittleEndian

// WriteTo serializes the MPHF (level bitsets, seeds, leftover map) to w,
// matching spec.md §6's "MPHF blob" component of the index file set.
func (m *MPHF) WriteTo(w io.Writer) (int64, error) {
	var n int64
	write := func(v uint64) error {
		var buf [8]byte
		le.PutUint64(buf[:], v)
		nn, err := w.Write(buf[:])
		n += int64(nn)
		return err
	}

	if err := write(uint64(len(m.levels))); err != nil {
		return n, errors.Wrap(err, "mphf: write level count")
	}
	for _, lv := range m.levels {
		if err := write(lv.seed); err != nil {
			return n, errors.Wrap(err, "mphf: write level seed")
		}
		if err := write(lv.size); err != nil {
			return n, errors.Wrap(err, "mphf: write level size")
		}
		if err := write(lv.offset); err != nil {
			return n, errors.Wrap(err, "mphf: write level offset")
		}
		data, err := lv.bv.MarshalBinary()
		if err != nil {
			return n, errors.Wrap(err, "mphf: marshal level bitmap")
		}
		if err := write(uint64(len(data))); err != nil {
			return n, errors.Wrap(err, "mphf: write level bitmap length")
		}
		nn, err := w.Write(data)
		n += int64(nn)
		if err != nil {
			return n, errors.Wrap(err, "mphf: write level bitmap")
		}
	}

	if err := write(uint64(len(m.leftover))); err != nil {
		return n, errors.Wrap(err, "mphf: write leftover count")
	}
	for k, r := range m.leftover {
		if err := write(k); err != nil {
			return n, err
		}
		if err := write(r); err != nil {
			return n, err
		}
	}

	if err := write(m.n); err != nil {
		return n, errors.Wrap(err, "mphf: write n")
	}
	return n, nil
}

// ReadFrom deserializes an MPHF previously written by WriteTo.
func ReadFrom(r io.Reader) (*MPHF, error) {
	read := func() (uint64, error) {
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return le.Uint64(buf[:]), nil
	}

	nLevels, err := read()
	if err != nil {
		return nil, errors.Wrap(err, "mphf: read level count")
	}

	m := &MPHF{levels: make([]level, nLevels)}
	for i := range m.levels {
		seed, err := read()
		if err != nil {
			return nil, errors.Wrap(err, "mphf: read level seed")
		}
		size, err := read()
		if err != nil {
			return nil, errors.Wrap(err, "mphf: read level size")
		}
		offset, err := read()
		if err != nil {
			return nil, errors.Wrap(err, "mphf: read level offset")
		}
		blobLen, err := read()
		if err != nil {
			return nil, errors.Wrap(err, "mphf: read level bitmap length")
		}
		blob := make([]byte, blobLen)
		if _, err := io.ReadFull(r, blob); err != nil {
			return nil, errors.Wrap(err, "mphf: read level bitmap")
		}
		bv, err := bitvec.UnmarshalBinary(blob, size)
		if err != nil {
			return nil, errors.Wrap(err, "mphf: unmarshal level bitmap")
		}
		m.levels[i] = level{bv: bv, size: size, seed: seed, offset: offset}
	}

	nLeftover, err := read()
	if err != nil {
		return nil, errors.Wrap(err, "mphf: read leftover count")
	}
	if nLeftover > 0 {
		m.leftover = make(map[uint64]uint64, nLeftover)
		for i := uint64(0); i < nLeftover; i++ {
			k, err := read()
			if err != nil {
				return nil, err
			}
			v, err := read()
			if err != nil {
				return nil, err
			}
			m.leftover[k] = v
		}
	}

	m.n, err = read()
	if err != nil {
		return nil, errors.Wrap(err, "mphf: read n")
	}
	return m, nil
}
