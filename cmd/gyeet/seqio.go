package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// fastxRecord is one parsed FASTA/FASTQ entry; quality lines, if any,
// are discarded (spec.md treats mapping quality as the alignment
// driver's own output field, not an input one).
type fastxRecord struct {
	Name string
	Seq  []byte
}

// readFastx streams records from r, auto-detecting FASTA ('>') vs FASTQ
// ('@'). FASTA/FASTQ parsing is explicitly out of this repo's scope
// (spec.md's Non-goals name it as an assumed external collaborator);
// this is a deliberately minimal reader — no line wrapping in FASTQ
// records, no embedded comments — just enough to drive `map` from a
// file, kept on bufio/strings rather than adding a parsing dependency
// the rest of the domain stack has no other use for.
func readFastx(r io.Reader, fn func(fastxRecord) error) error {
	br := bufio.NewReaderSize(r, 64*1024)
	first, err := br.Peek(1)
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	switch first[0] {
	case '>':
		return readFasta(br, fn)
	case '@':
		return readFastq(br, fn)
	default:
		return fmt.Errorf("seqio: input does not look like FASTA or FASTQ (starts with %q)", string(first))
	}
}

func readFasta(r *bufio.Reader, fn func(fastxRecord) error) error {
	var cur fastxRecord
	var seq strings.Builder
	flush := func() error {
		if cur.Name == "" {
			return nil
		}
		cur.Seq = []byte(seq.String())
		seq.Reset()
		return fn(cur)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, ">") {
			if err := flush(); err != nil {
				return err
			}
			cur = fastxRecord{Name: headerName(line[1:])}
			continue
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return flush()
}

func readFastq(r *bufio.Reader, fn func(fastxRecord) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for {
		if !sc.Scan() {
			break
		}
		header := sc.Text()
		if !strings.HasPrefix(header, "@") {
			return fmt.Errorf("seqio: expected FASTQ header line starting with '@', got %q", header)
		}
		if !sc.Scan() {
			return fmt.Errorf("seqio: truncated FASTQ record (missing sequence line)")
		}
		seqLine := sc.Text()
		if !sc.Scan() {
			return fmt.Errorf("seqio: truncated FASTQ record (missing '+' line)")
		}
		if !sc.Scan() {
			return fmt.Errorf("seqio: truncated FASTQ record (missing quality line)")
		}
		if err := fn(fastxRecord{Name: headerName(header[1:]), Seq: []byte(seqLine)}); err != nil {
			return err
		}
	}
	return sc.Err()
}

// headerName takes the part of a FASTA/FASTQ header after '>'/'@' and
// keeps only the id token before the first whitespace run.
func headerName(rest string) string {
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		return rest[:i]
	}
	return rest
}
