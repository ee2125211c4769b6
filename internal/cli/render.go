package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/pipeline"
)

// defaultOutput is the base name used when -o is not given.
const defaultOutput = "qrcode"

// exportFlags control how the rendered document is written.
type exportFlags struct {
	output    string  // output file, base path for several formats, or "-" for stdout
	formats   string  // comma-separated output formats
	precision int     // decimals for SVG path coordinates
	scale     float64 // PNG pixels per style pixel
	refresh   bool    // ignore cached artifacts
}

func (f *exportFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format), base path (several), or - for stdout")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png (comma-separated)")
	fs.IntVar(&f.precision, "precision", pipeline.DefaultPrecision, "decimals for SVG path coordinates")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	fs.BoolVar(&f.refresh, "refresh", false, "re-render even if cached")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"svg", "png"}, cobra.ShellCompDirectiveNoFileComp))
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		sf    styleFlags
		ef    exportFlags
		input string
	)

	cmd := &cobra.Command{
		Use:   "render [payload]",
		Short: "Render a payload as a styled QR code",
		Long: `Render a payload (text or URL) as a styled QR code.

The payload is taken from the argument, from --input, or from stdin when the
argument is "-". Style flags override values from --style.`,
		Example: `  qrsmith render https://example.com -o example.svg
  qrsmith render "hello" --dots fluid-smooth --locator extra-rounded -f svg,png
  qrsmith render https://example.com --logo logo.png --style brand.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(args, input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			s, keepECC, err := sf.build(cmd)
			if err != nil {
				return err
			}
			formats := parseFormats(ef.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				Payload:   payload,
				Style:     s,
				KeepECC:   keepECC,
				Formats:   formats,
				Precision: ef.precision,
				Scale:     ef.scale,
				Refresh:   ef.refresh,
			}
			return runRender(cmd.Context(), runner, opts, ef.output, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "read the payload from a file")
	sf.register(cmd)
	ef.register(cmd)

	return cmd
}

// readPayload picks the payload from the argument, --input, or stdin.
func readPayload(args []string, input string, stdin io.Reader) (string, error) {
	switch {
	case input != "" && len(args) > 0:
		return "", errors.Config("give the payload as an argument or with --input, not both")
	case input != "":
		if err := errors.ValidatePath(input); err != nil {
			return "", err
		}
		data, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("read payload: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read payload: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	case len(args) == 1:
		return args[0], nil
	}
	return "", errors.Config("no payload given")
}

// runRender executes the pipeline and writes every artifact.
func runRender(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string, stdout io.Writer) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	if output == "-" {
		if len(opts.Formats) != 1 {
			return errors.Config("stdout output needs exactly one format")
		}
		_, err := stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(output, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		logger.Debug("wrote artifact", "path", paths[format], "bytes", len(result.Artifacts[format]))
	}

	prog.done("qr code written", "payload", truncate(opts.Payload, 40), "formats", len(opts.Formats), "ecc", result.ECC)
	if result.ECC != opts.Style.ECC {
		printInfo("Error correction raised to %s for the logo", result.ECC)
	}
	printStats(result.Stats.Size, result.Stats.Modules, result.CacheInfo.RenderHit)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths maps each format to its file. A single format writes to
// output as given; several formats share output's base name.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	for _, format := range formats {
		paths[format] = base + "." + format
	}
	return paths
}

// basePath strips a known format extension from output.
// An empty output yields defaultOutput.
func basePath(output string) string {
	if output == "" {
		return defaultOutput
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
