package index

import "encoding/binary"

// Magic is the 8-byte file signature every index file begins with
// (spec.md §6).
var Magic = [8]byte{'G', 'Y', 'E', 'E', 'T', 'I', 'D', 'X'}

// Version is the on-disk format version written into every file's header.
const Version uint32 = 1

var le = binary.LittleEndian

const headerLen = 8 + 4 // magic + version

// File suffixes, one per logical array (spec.md §6).
const (
	SuffixMeta  = ".meta"
	SuffixSeqF  = ".sqf"
	SuffixSeqR  = ".sqr"
	SuffixBV    = ".sbv"
	SuffixEdge  = ".edge"
	SuffixNRef  = ".nref"
	SuffixMPHF  = ".mphf"
	SuffixKPRef = ".kpref"
	SuffixKPTab = ".kptab"
)
