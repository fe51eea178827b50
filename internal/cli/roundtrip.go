package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/pipeline"
)

// roundtripFlags holds flags for the roundtrip command.
type roundtripFlags struct {
	output      string
	format      string
	fonts       []string
	allFonts    bool
	defaultSize float64
	minSize     float64
	noCache     bool
	refresh     bool
	strict      bool
}

// roundtripCommand creates the roundtrip command.
func (c *CLI) roundtripCommand() *cobra.Command {
	var flags roundtripFlags

	cmd := &cobra.Command{
		Use:   "roundtrip <document>",
		Short: "Build a document in a fresh host and export it back",
		Long: `Build every tree of a document in a fresh in-memory host, export the result
and write it in canonical form: defaults elided, unknown types normalized,
values clamped, and anything the host cannot build replaced by its fallback.

Each degraded or dropped node is reported. Results are cached by input hash
and options.`,
		Example: `  scenedoc roundtrip scene.json
  scenedoc roundtrip scene.yaml -o out/scene.json
  scenedoc roundtrip scene.json --font "Brand:Bold" --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoundtrip(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: json or yaml (default from output file, config or input)")
	cmd.Flags().StringArrayVar(&flags.fonts, "font", nil, "font installed in the host, as Family:Style (repeatable)")
	cmd.Flags().BoolVar(&flags.allFonts, "all-fonts", false, "treat every font the document names as installed")
	cmd.Flags().Float64Var(&flags.defaultSize, "default-size", 0, "size for missing dimensions")
	cmd.Flags().Float64Var(&flags.minSize, "min-size", 0, "smallest dimension the host accepts")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail if any node was dropped or degraded")

	return cmd
}

func (c *CLI) runRoundtrip(cmd *cobra.Command, input string, flags roundtripFlags) error {
	ctx := cmd.Context()
	status := cmd.ErrOrStderr()

	d, err := readDocument(input)
	if err != nil {
		return err
	}
	opts, err := c.roundtripOptions(input, flags)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Normalize(ctx, d, opts)
	if err != nil {
		return err
	}
	prog.done("Round trip complete", "nodes", res.Stats.NodeCount)

	printStats(status, res.Stats, res.CacheInfo.Hit)
	printIssues(status, res.Issues)

	if flags.output == "" {
		if _, err := cmd.OutOrStdout().Write(res.Output); err != nil {
			return err
		}
	} else {
		if err := writeOutput(flags.output, res.Output); err != nil {
			return err
		}
		printSuccess(status, "Wrote %s document", opts.Format)
		printFile(status, flags.output)
	}

	if flags.strict && len(res.Issues) > 0 {
		return errs.New(errs.ErrCodeInvalidInput, "%d %s", len(res.Issues), plural(len(res.Issues), "node was not converted faithfully", "nodes were not converted faithfully"))
	}
	return nil
}

// roundtripOptions merges config and flags. The output format comes from
// --format, then the output extension, then the config, then the input.
func (c *CLI) roundtripOptions(input string, flags roundtripFlags) (pipeline.Options, error) {
	opts := c.Config.options()

	switch {
	case flags.format != "":
		f, err := doc.ParseFormat(flags.format)
		if err != nil {
			return opts, err
		}
		opts.Format = f
	case flags.output != "":
		if err := errs.ValidateDocumentPath(flags.output); err != nil {
			return opts, err
		}
		opts.Format = doc.FormatFromPath(flags.output)
	case opts.Format == "" && input != "-":
		opts.Format = doc.FormatFromPath(input)
	}

	if len(flags.fonts) > 0 {
		fonts, err := parseFonts(flags.fonts)
		if err != nil {
			return opts, err
		}
		opts.Fonts = append(opts.Fonts, fonts...)
	}
	if flags.allFonts {
		opts.AllFonts = true
	}
	if flags.defaultSize > 0 {
		opts.DefaultSize = flags.defaultSize
	}
	if flags.minSize > 0 {
		opts.MinSize = flags.minSize
	}
	opts.Refresh = flags.refresh
	opts.Logger = c.Logger
	return opts, opts.ValidateAndSetDefaults()
}
