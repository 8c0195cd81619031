package index

import (
	"bytes"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ekg/gyeet/internal/seqpos"
)

// Write persists idx as the nine-file set described by spec.md §6, all
// sharing the given path prefix.
func (idx *Index) Write(prefix string) error {
	if err := writeFile(prefix+SuffixMeta, idx.metaPayload()); err != nil {
		return err
	}
	if err := writeFile(prefix+SuffixSeqF, idx.seqFwd); err != nil {
		return err
	}
	if err := writeFile(prefix+SuffixSeqR, idx.seqRev); err != nil {
		return err
	}
	bvData, err := idx.seqBV.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "index: marshal seq_bv")
	}
	if err := writeFile(prefix+SuffixBV, bvData); err != nil {
		return err
	}
	if err := writeFile(prefix+SuffixEdge, encodeHandles(idx.edges)); err != nil {
		return err
	}
	if err := writeFile(prefix+SuffixNRef, idx.encodeNodeRefs()); err != nil {
		return err
	}

	var mphfBuf bytes.Buffer
	if _, err := idx.mphf.WriteTo(&mphfBuf); err != nil {
		return errors.Wrap(err, "index: serialize mphf")
	}
	if err := writeFile(prefix+SuffixMPHF, mphfBuf.Bytes()); err != nil {
		return err
	}

	if err := writeFile(prefix+SuffixKPRef, encodeUint64s(idx.kpRef)); err != nil {
		return err
	}
	if err := writeFile(prefix+SuffixKPTab, idx.encodeOccurrences()); err != nil {
		return err
	}
	return nil
}

// WriteDir writes the index under dir using base as the shared prefix,
// i.e. Write(filepath.Join(dir, base)).
func (idx *Index) WriteDir(dir, base string) error {
	return idx.Write(filepath.Join(dir, base))
}

func (idx *Index) metaPayload() []byte {
	buf := make([]byte, 8*6)
	le.PutUint64(buf[0:], uint64(idx.K))
	le.PutUint64(buf[8:], uint64(idx.SeqLen))
	le.PutUint64(buf[16:], uint64(idx.NNodes))
	le.PutUint64(buf[24:], uint64(len(idx.edges)))
	le.PutUint64(buf[32:], idx.mphf.N())
	le.PutUint64(buf[40:], uint64(len(idx.kpTable)))
	return buf
}

// nodeRefRecordLen is 8 (SeqStart) + 8 (EdgeStart) + 4 (NIncoming) + 4
// (padding, to keep every record 8-byte aligned for mmap access).
const nodeRefRecordLen = 24

func (idx *Index) encodeNodeRefs() []byte {
	buf := make([]byte, len(idx.nodeRef)*nodeRefRecordLen)
	for i, nr := range idx.nodeRef {
		off := i * nodeRefRecordLen
		le.PutUint64(buf[off:], nr.SeqStart)
		le.PutUint64(buf[off+8:], nr.EdgeStart)
		le.PutUint32(buf[off+16:], nr.NIncoming)
	}
	return buf
}

func (idx *Index) encodeOccurrences() []byte {
	buf := make([]byte, len(idx.kpTable)*16)
	for i, o := range idx.kpTable {
		off := i * 16
		le.PutUint64(buf[off:], uint64(o.Begin))
		le.PutUint64(buf[off+8:], uint64(o.End))
	}
	return buf
}

func encodeHandles(hs []seqpos.Handle) []byte {
	buf := make([]byte, len(hs)*8)
	for i, h := range hs {
		le.PutUint64(buf[i*8:], uint64(h))
	}
	return buf
}

func encodeUint64s(vs []uint64) []byte {
	buf := make([]byte, len(vs)*8)
	for i, v := range vs {
		le.PutUint64(buf[i*8:], v)
	}
	return buf
}
