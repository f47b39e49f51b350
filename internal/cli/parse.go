package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowdiagram/pkg/flow"
	flowio "github.com/matzehuels/flowdiagram/pkg/io"
	"github.com/matzehuels/flowdiagram/pkg/pipeline"
)

// stdinName is the document name given to definitions read from stdin.
const stdinName = "stdin"

// parseCommand creates the parse command for validating definitions.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		asJSON bool
		asYAML bool
		output string
		from   string
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Validate a flow definition and show its structure",
		Long: `Validate a flow definition and show its structure.

The definition is split into its prefix, fork and suffix. Without flags a
summary is printed; --json or --yaml write the normalized definition instead,
which is handy for converting between formats.

Use "-" to read the definition from stdin (see --from).`,
		Example: `  flowdiagram parse examples/basic.yaml
  flowdiagram parse examples/basic.toml --json -o basic.json
  cat basic.json | flowdiagram parse - --yaml`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDefinitions(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0], from)
			if err != nil {
				return err
			}
			format := flowio.Format("")
			switch {
			case asJSON:
				format = flowio.FormatJSON
			case asYAML:
				format = flowio.FormatYAML
			}
			return c.runParse(cmd.Context(), cmd, doc, format, output)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "write the normalized definition as JSON")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "write the normalized definition as YAML")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&from, "from", string(flowio.FormatJSON), "format of stdin input: json, jsonc, yaml, toml")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")

	registerValueCompletions(cmd)
	return cmd
}

// runParse normalizes doc and prints either the summary or the definition.
func (c *CLI) runParse(ctx context.Context, cmd *cobra.Command, doc *flowio.Document, format flowio.Format, output string) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	p, err := runner.Parse(ctx, doc)
	if err != nil {
		return err
	}

	out, err := openOutput(cmd, output)
	if err != nil {
		return err
	}
	defer out.Close()

	if format == "" {
		writeSummary(out, doc, p)
		return nil
	}

	normalized := *doc
	normalized.Graph = pipeline.Normalized(p)
	if err := flowio.Write(out, &normalized, format); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	if output != "" {
		printSuccess("Wrote normalized definition")
		printFile(output)
	}
	return nil
}

// writeSummary prints the document's metadata and structure.
func writeSummary(w io.Writer, doc *flowio.Document, p *flow.Parsed) {
	printKeyValue(w, "Document", doc.Name)
	if doc.Title != "" {
		printKeyValue(w, "Title", doc.Title)
	}
	printKeyValue(w, "Format", string(doc.Format))
	printKeyValue(w, "Nodes", strconv.Itoa(p.NodeCount()))
	printKeyValue(w, "Prefix", nodeList(p.Prefix))
	if p.HasFork {
		sizes := make([]string, len(p.Fork))
		for i, col := range p.Fork {
			sizes[i] = strconv.Itoa(len(col))
		}
		printKeyValue(w, "Fork", fmt.Sprintf("%d columns (%s items), depth %d", len(p.Fork), strings.Join(sizes, ", "), p.ForkDepth()))
	} else {
		printKeyValue(w, "Fork", "none")
	}
	if p.HasSuffix {
		printKeyValue(w, "Suffix", nodeList(p.Suffix))
	}
}

// nodeList joins display titles, or returns "none".
func nodeList(nodes []flow.NodeRef) string {
	if len(nodes) == 0 {
		return "none"
	}
	titles := make([]string, len(nodes))
	for i, n := range nodes {
		titles[i] = n.DisplayTitle()
	}
	return strings.Join(titles, " → ")
}

// readDocument reads a definition file, or stdin when path is "-".
func readDocument(cmd *cobra.Command, path, from string) (*flowio.Document, error) {
	if path != "-" {
		return flowio.ReadFile(path)
	}
	format, err := flowio.ParseFormat(from)
	if err != nil {
		return nil, err
	}
	doc, err := flowio.Read(cmd.InOrStdin(), format)
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}
	doc.Name = stdinName
	return doc, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns the command's stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(path)
}
