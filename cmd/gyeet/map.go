package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ekg/gyeet/internal/align"
	"github.com/ekg/gyeet/internal/index"
	"github.com/ekg/gyeet/internal/worker"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "map query sequences against a built index",
	Long: `map query sequences against a built index

Input is (gzip-unaware) FASTA or FASTQ from a file or stdin, or a single
query string via -s/--one-sequence. Output is one line per alignment
record (spec.md §6), written to -o/--out-file.
`,
	Run: func(cmd *cobra.Command, args []string) {
		idxPrefix, _ := cmd.Flags().GetString("index")
		outPath, _ := cmd.Flags().GetString("out-file")
		oneSeq, _ := cmd.Flags().GetString("one-sequence")
		configPath, _ := cmd.Flags().GetString("config")
		dontAlign, _ := cmd.Flags().GetBool("dont-align")

		cfg := defaultMapConfig()
		if configPath != "" {
			var err error
			cfg, err = loadConfigFile(configPath)
			checkError(err)
		}
		overrideFromFlags(cmd, &cfg)

		idxPrefix, err := expandPath(idxPrefix)
		checkError(err)

		log.Infof("loading index: %s", idxPrefix)
		idx, err := index.Load(idxPrefix)
		checkError(err)
		defer idx.Close()

		params := align.Params{
			K:               idx.K,
			MaxGap:          cfg.MaxGap,
			MaxMismatchRate: cfg.MaxMismatchRate,
			MinAnchors:      cfg.ChainMinAnchors,
			ChainOverlapMax: cfg.ChainOverlapMax,
			MergeGap:        align.DefaultParams.MergeGap,
			BestN:           cfg.AlignBestN,
			DontAlign:       dontAlign,
		}

		baseAligner := align.NewWFAAligner()

		outFh := os.Stdout
		if outPath != "" && outPath != "-" {
			f, err := os.Create(outPath)
			checkError(errors.Wrapf(err, "creating %s", outPath))
			defer f.Close()
			outFh = f
		}

		if oneSeq != "" {
			recs := align.MapRead(idx, baseAligner, "query", []byte(strings.ToUpper(oneSeq)), params)
			for _, rec := range recs {
				fmt.Fprintln(outFh, formatRecord(rec))
			}
			return
		}

		pool := &worker.Pool{
			NumWorkers: cfg.Threads,
			MapBatch: func(ctx context.Context, reads []worker.ReadInput) []align.Record {
				var out []align.Record
				for _, r := range reads {
					out = append(out, align.MapRead(idx, baseAligner, r.Name, r.Seq, params)...)
				}
				return out
			},
		}

		batches := make(chan worker.Batch, cfg.Threads*2)
		go func() {
			defer close(batches)
			feedBatches(args, batches)
		}()

		for result := range pool.Run(context.Background(), batches) {
			for _, rec := range result.Records {
				fmt.Fprintln(outFh, formatRecord(rec))
			}
		}

		log.Info("done mapping")
	},
}

// batchSize bounds how many reads one worker.Batch carries; small
// enough that a slow read doesn't stall the ordered-output buffer for
// long, large enough to amortize per-batch dispatch overhead.
const batchSize = 64

func feedBatches(files []string, out chan<- worker.Batch) {
	ordinal := 0
	var cur []worker.ReadInput
	flush := func() {
		if len(cur) == 0 {
			return
		}
		out <- worker.Batch{Ordinal: ordinal, Reads: cur}
		ordinal++
		cur = nil
	}

	handle := func(r fastxRecord) error {
		cur = append(cur, worker.ReadInput{Name: r.Name, Seq: []byte(strings.ToUpper(string(r.Seq)))})
		if len(cur) >= batchSize {
			flush()
		}
		return nil
	}

	if len(files) == 0 {
		checkError(readFastx(os.Stdin, handle))
		flush()
		return
	}
	for _, path := range files {
		f, err := os.Open(path)
		checkError(errors.Wrapf(err, "opening %s", path))
		checkError(readFastx(f, handle))
		f.Close()
	}
	flush()
}

// formatRecord renders spec.md §6's whitespace-separated record, with
// the CIGAR carried as the optional `cg:Z:` tag when present.
func formatRecord(r align.Record) string {
	if r.Unmapped {
		return strings.Join([]string{
			r.QueryName, strconv.Itoa(r.QueryLen), "0", "0", "*", "*", "0", "0", "0", "0", "0", "0",
		}, "\t")
	}
	fields := []string{
		r.QueryName,
		strconv.Itoa(r.QueryLen),
		strconv.Itoa(r.QueryStart),
		strconv.Itoa(r.QueryEnd),
		string(r.Strand),
		r.PathString,
		strconv.Itoa(r.PathLen),
		strconv.Itoa(r.PathStart),
		strconv.Itoa(r.PathEnd),
		strconv.Itoa(r.ResidueMatches),
		strconv.Itoa(r.BlockLen),
		strconv.Itoa(r.MapQ),
	}
	if r.CIGAR != "" {
		fields = append(fields, "cg:Z:"+r.CIGAR)
	}
	return strings.Join(fields, "\t")
}

func overrideFromFlags(cmd *cobra.Command, cfg *mapConfig) {
	if cmd.Flags().Changed("max-gap-length") {
		cfg.MaxGap, _ = cmd.Flags().GetInt("max-gap-length")
	}
	if cmd.Flags().Changed("max-mismatch-rate") {
		cfg.MaxMismatchRate, _ = cmd.Flags().GetFloat64("max-mismatch-rate")
	}
	if cmd.Flags().Changed("chain-overlap-max") {
		cfg.ChainOverlapMax, _ = cmd.Flags().GetFloat64("chain-overlap-max")
	}
	if cmd.Flags().Changed("chain-min-n-anchors") {
		cfg.ChainMinAnchors, _ = cmd.Flags().GetInt("chain-min-n-anchors")
	}
	if cmd.Flags().Changed("align-best-n") {
		cfg.AlignBestN, _ = cmd.Flags().GetInt("align-best-n")
	}
	if cmd.Flags().Changed("threads") {
		cfg.Threads, _ = cmd.Flags().GetInt("threads")
	}
}

func init() {
	RootCmd.AddCommand(mapCmd)

	mapCmd.Flags().StringP("index", "i", "", "index file prefix created by \"gyeet build\"")
	mapCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout)`)
	mapCmd.Flags().StringP("one-sequence", "s", "", "map a single query string directly instead of reading a file")
	mapCmd.Flags().String("config", "", "load map parameters from a TOML file")

	mapCmd.Flags().IntP("max-gap-length", "g", align.DefaultParams.MaxGap, "max gap length between colinear anchors")
	mapCmd.Flags().Float64P("max-mismatch-rate", "r", align.DefaultParams.MaxMismatchRate,
		"max estimated mismatch rate between anchors, default 0.2 (see SPEC_FULL.md §5 for why not 0.1)")
	mapCmd.Flags().Float64P("chain-overlap-max", "c", align.DefaultParams.ChainOverlapMax, "max query-interval overlap fraction to accept a chain into a superchain")
	mapCmd.Flags().IntP("chain-min-n-anchors", "a", 3, "minimum anchors for a chain to survive")
	mapCmd.Flags().IntP("align-best-n", "n", align.DefaultParams.BestN, "max superchains aligned per read")
	mapCmd.Flags().IntP("threads", "t", 1, "number of worker goroutines")

	mapCmd.Flags().BoolP("dont-align", "D", false, "stop after superchaining; emit superchain summaries instead of alignments")

	mapCmd.MarkFlagRequired("index")
}
