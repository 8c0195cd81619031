package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ekg/gyeet/internal/graph"
	"github.com/ekg/gyeet/internal/index"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "build an on-disk index from a graph",
	Long: `build an on-disk index from a graph

The graph itself is read from a pair of tab-separated files (node
construction from a native graph toolkit is out of scope, spec.md's
Non-goals): --nodes is "id<TAB>sequence" per line, --edges is
"from_id<TAB>from_strand<TAB>to_id<TAB>to_strand" per line.
`,
	Run: func(cmd *cobra.Command, args []string) {
		nodesPath, _ := cmd.Flags().GetString("nodes")
		edgesPath, _ := cmd.Flags().GetString("edges")
		prefix, _ := cmd.Flags().GetString("prefix")
		k, _ := cmd.Flags().GetInt("kmer-size")
		maxFurcations, _ := cmd.Flags().GetInt("max-furcations")
		maxDegree, _ := cmd.Flags().GetInt("max-degree")

		prefix, err := expandPath(prefix)
		checkError(err)

		nodesFh, err := os.Open(nodesPath)
		checkError(errors.Wrapf(err, "opening %s", nodesPath))
		defer nodesFh.Close()

		edgesFh, err := os.Open(edgesPath)
		checkError(errors.Wrapf(err, "opening %s", edgesPath))
		defer edgesFh.Close()

		g, err := graph.LoadText(nodesFh, edgesFh)
		checkError(err)

		log.Infof("building index: %d nodes, %d bases, k=%d", g.NodeCount(), g.TotalLength(), k)

		idx, err := index.Build(g, index.BuildOptions{K: k, MaxFurcations: maxFurcations, MaxDegree: maxDegree})
		checkError(err)

		log.Infof("writing index to prefix: %s", prefix)
		checkError(errors.Wrap(idx.Write(prefix), "writing index"))

		log.Info("done building index")
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("nodes", "g", "", "tab-separated node file: id<TAB>sequence")
	buildCmd.Flags().StringP("edges", "e", "", "tab-separated edge file: from_id<TAB>from_strand<TAB>to_id<TAB>to_strand")
	buildCmd.Flags().StringP("prefix", "p", "", "output index file prefix")
	buildCmd.Flags().IntP("kmer-size", "k", 15, "k-mer size")
	buildCmd.Flags().Int("max-furcations", 4, "k-mer enumerator furcation budget per walk")
	buildCmd.Flags().Int("max-degree", 64, "do not start k-mer walks at nodes with this many or more outgoing neighbors")

	buildCmd.MarkFlagRequired("nodes")
	buildCmd.MarkFlagRequired("edges")
	buildCmd.MarkFlagRequired("prefix")
}
