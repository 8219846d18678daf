package cmd_shell

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive trie shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		interactive := false
		if f, ok := in.(*os.File); ok {
			interactive = isatty.IsTerminal(f.Fd())
		}
		return New(cmd.OutOrStdout()).Run(in, interactive)
	},
}
