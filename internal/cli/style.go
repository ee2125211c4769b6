package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/style"
)

// styleCommand creates the style command, which prints the effective style
// so it can be saved and reused with --style.
func (c *CLI) styleCommand() *cobra.Command {
	var (
		sf     styleFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "style",
		Short: "Print the effective style as TOML or JSON",
		Long: `Print the style that render would use, after applying --style and
all style flags. Redirect the output to a file to reuse it:

  qrsmith style --dots rounded --color navy > brand.toml
  qrsmith render https://example.com --style brand.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := sf.build(cmd)
			if err != nil {
				return err
			}
			f := style.Format(format)
			if f != style.FormatTOML && f != style.FormatJSON {
				return errors.Config("invalid format: %q (must be toml or json)", format)
			}
			return style.Encode(cmd.OutOrStdout(), s, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(style.FormatTOML), "output format: toml, json")
	sf.register(cmd)

	return cmd
}
