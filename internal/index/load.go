package index

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/ekg/gyeet/internal/bitvec"
	"github.com/ekg/gyeet/internal/mphf"
	"github.com/ekg/gyeet/internal/seqpos"
)

// Load memory-maps the index file set sharing prefix. The .meta and
// .mphf files are read fully; every other file is mmapped. seq_fwd and
// seq_rev are used in place inside their mappings, but the edge table,
// node refs, kmer_pos_ref and kmer_pos_table are decoded into heap
// copies and the seq_bv rank checkpoints are rebuilt, so load time grows
// with the size of those arrays. Callers must call Close when done to
// release the mmapped regions.
func Load(prefix string) (_ *Index, err error) {
	idx := &Index{}
	defer func() {
		if err != nil {
			idx.Close()
		}
	}()

	meta, err := readFileFull(prefix + SuffixMeta)
	if err != nil {
		return nil, errors.Wrap(err, "index: load meta")
	}
	if len(meta) < 8*6 {
		return nil, errors.Wrapf(ErrTruncatedFile, "%s", prefix+SuffixMeta)
	}
	idx.K = int(le.Uint64(meta[0:]))
	idx.SeqLen = int64(le.Uint64(meta[8:]))
	idx.NNodes = int(le.Uint64(meta[16:]))
	nEdges := le.Uint64(meta[24:])
	nKmers := le.Uint64(meta[32:])
	nOccs := le.Uint64(meta[40:])

	if err := idx.mmapArray(prefix+SuffixSeqF, &idx.seqFwd); err != nil {
		return nil, err
	}
	if err := idx.mmapArray(prefix+SuffixSeqR, &idx.seqRev); err != nil {
		return nil, err
	}

	bvRaw, closeBV, err := mmapReadOnly(prefix + SuffixBV)
	if err != nil {
		return nil, err
	}
	idx.closers = append(idx.closers, closeBV)
	bvPayload, err := readHeader(prefix+SuffixBV, bvRaw)
	if err != nil {
		return nil, err
	}
	idx.seqBV, err = bitvec.UnmarshalBinary(bvPayload, uint64(idx.SeqLen))
	if err != nil {
		return nil, errors.Wrap(err, "index: unmarshal seq_bv")
	}

	var edgeRaw []byte
	if err := idx.mmapArray(prefix+SuffixEdge, &edgeRaw); err != nil {
		return nil, err
	}
	idx.edges = decodeHandles(edgeRaw, int(nEdges))

	var nrefRaw []byte
	if err := idx.mmapArray(prefix+SuffixNRef, &nrefRaw); err != nil {
		return nil, err
	}
	idx.nodeRef = decodeNodeRefs(nrefRaw, idx.NNodes+1)

	mphfPayload, err := readFileFull(prefix + SuffixMPHF)
	if err != nil {
		return nil, errors.Wrap(err, "index: load mphf")
	}
	idx.mphf, err = mphf.ReadFrom(bytes.NewReader(mphfPayload))
	if err != nil {
		return nil, errors.Wrap(err, "index: deserialize mphf")
	}
	if idx.mphf.N() != nKmers {
		return nil, errors.Errorf("index: mphf trained on %d keys, meta declares %d", idx.mphf.N(), nKmers)
	}

	var kprefRaw []byte
	if err := idx.mmapArray(prefix+SuffixKPRef, &kprefRaw); err != nil {
		return nil, err
	}
	idx.kpRef = decodeUint64s(kprefRaw, int(nKmers)+1)

	var kptabRaw []byte
	if err := idx.mmapArray(prefix+SuffixKPTab, &kptabRaw); err != nil {
		return nil, err
	}
	idx.kpTable = decodeOccurrences(kptabRaw, int(nOccs))

	return idx, nil
}

// mmapArray mmaps path and points *dst at the payload past its header,
// keeping the mapping (and its backing file descriptor) alive via a
// registered closer.
func (idx *Index) mmapArray(path string, dst *[]byte) error {
	raw, closer, err := mmapReadOnly(path)
	if err != nil {
		return err
	}
	idx.closers = append(idx.closers, closer)
	payload, err := readHeader(path, raw)
	if err != nil {
		return err
	}
	*dst = payload
	return nil
}

// Close releases every mmapped region held by idx. Safe to call more
// than once; safe on an Index built by Build (a no-op, since Build's
// arrays are plain heap slices).
func (idx *Index) Close() error {
	var firstErr error
	for i := len(idx.closers) - 1; i >= 0; i-- {
		if err := idx.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	idx.closers = nil
	return firstErr
}

func decodeHandles(buf []byte, n int) []seqpos.Handle {
	out := make([]seqpos.Handle, n)
	for i := range out {
		out[i] = seqpos.Handle(le.Uint64(buf[i*8:]))
	}
	return out
}

func decodeNodeRefs(buf []byte, n int) []NodeRef {
	out := make([]NodeRef, n)
	for i := range out {
		off := i * nodeRefRecordLen
		out[i] = NodeRef{
			SeqStart:  le.Uint64(buf[off:]),
			EdgeStart: le.Uint64(buf[off+8:]),
			NIncoming: le.Uint32(buf[off+16:]),
		}
	}
	return out
}

func decodeUint64s(buf []byte, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = le.Uint64(buf[i*8:])
	}
	return out
}

func decodeOccurrences(buf []byte, n int) []Occurrence {
	out := make([]Occurrence, n)
	for i := range out {
		off := i * 16
		out[i] = Occurrence{
			Begin: seqpos.Pos(le.Uint64(buf[off:])),
			End:   seqpos.Pos(le.Uint64(buf[off+8:])),
		}
	}
	return out
}
