package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenedoc/pkg/render/outline"
)

// documentExts are the file extensions offered for document arguments.
var documentExts = []string{"json", "yaml", "yml"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for scenedoc. Document arguments
complete to .json and .yaml files, and --format and --direction complete to
their accepted values.

  $ source <(scenedoc completion bash)
  $ scenedoc completion zsh > "${fpath[1]}/_scenedoc"
  $ scenedoc completion fish | source
  PS> scenedoc completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// registerCompletions wires argument and flag completion into every command
// that reads a document.
func registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		switch cmd.Name() {
		case "roundtrip", "inspect", "outline", "browse":
		default:
			continue
		}
		cmd.ValidArgsFunction = completeDocument

		if f := cmd.Flags().Lookup("format"); f != nil {
			formats := []string{"json", "yaml"}
			if cmd.Name() == "outline" {
				formats = []string{outline.FormatSVG, outline.FormatDOT}
			}
			_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formats, cobra.ShellCompDirectiveNoFileComp))
		}
		if f := cmd.Flags().Lookup("direction"); f != nil {
			_ = cmd.RegisterFlagCompletionFunc("direction", cobra.FixedCompletions(
				[]string{outline.TopToBottom, outline.LeftToRight}, cobra.ShellCompDirectiveNoFileComp))
		}
	}
}

// completeDocument offers document files for the single positional argument.
func completeDocument(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return documentExts, cobra.ShellCompDirectiveFilterFileExt
}
