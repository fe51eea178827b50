package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenedoc/pkg/pipeline"
	"github.com/matzehuels/scenedoc/pkg/render/outline"
)

// outlineFlags holds flags for the outline command.
type outlineFlags struct {
	output    string
	format    string
	direction string
	depth     int
	detailed  bool
	noCache   bool
	refresh   bool
}

// outlineCommand creates the outline command.
func (c *CLI) outlineCommand() *cobra.Command {
	var flags outlineFlags

	cmd := &cobra.Command{
		Use:   "outline <document>",
		Short: "Render a document's node tree as a diagram",
		Long: `Render the node tree of a document with Graphviz. Each node is drawn in its
first solid fill color; hidden nodes are dashed.`,
		Example: `  scenedoc outline scene.json -o scene.svg
  scenedoc outline scene.yaml -f dot --direction LR --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOutline(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: svg or dot (default from output file, else svg)")
	cmd.Flags().StringVar(&flags.direction, "direction", "", "graph direction: TB or LR")
	cmd.Flags().IntVarP(&flags.depth, "depth", "d", 0, "levels below each root to draw (0 = all)")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "add sizes, child counts and text to labels")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runOutline(cmd *cobra.Command, input string, flags outlineFlags) error {
	ctx := cmd.Context()
	status := cmd.ErrOrStderr()

	d, err := readDocument(input)
	if err != nil {
		return err
	}
	opts := c.outlineOptions(flags)

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinner(ctx, status, "Rendering outline")
	spin.Start()
	data, cached, err := runner.Outline(ctx, d, opts)
	if err != nil {
		spin.StopWithError("Outline failed")
		return err
	}
	spin.Stop()

	if flags.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := writeOutput(flags.output, data); err != nil {
		return err
	}
	state := iconFresh
	if cached {
		state = iconCached
	}
	printSuccess(status, "Rendered %s outline of %d nodes (%s)", opts.Format, d.Count(), state)
	printFile(status, flags.output)
	return nil
}

// outlineOptions merges config and flags.
func (c *CLI) outlineOptions(flags outlineFlags) pipeline.OutlineOptions {
	opts := pipeline.OutlineOptions{Options: c.Config.outlineOptions(), Refresh: flags.refresh}
	if flags.direction != "" {
		opts.Direction = flags.direction
	}
	if flags.depth > 0 {
		opts.MaxDepth = flags.depth
	}
	if flags.detailed {
		opts.Detailed = true
	}

	switch {
	case flags.format != "":
		opts.Format = strings.ToLower(flags.format)
	case strings.EqualFold(filepath.Ext(flags.output), ".dot"), strings.EqualFold(filepath.Ext(flags.output), ".gv"):
		opts.Format = outline.FormatDOT
	default:
		opts.Format = outline.FormatSVG
	}
	return opts
}
