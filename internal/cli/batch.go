package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/pipeline"
)

// batchOpts holds the flags specific to the batch command.
type batchOpts struct {
	dir       string // output directory
	jobs      int    // concurrent renders
	keepGoing bool   // log failures and continue instead of stopping
}

// batchItem is one payload and the base path its artifacts are written to.
type batchItem struct {
	line    int
	payload string
	base    string
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		sf   styleFlags
		ef   exportFlags
		opts = batchOpts{dir: ".", jobs: runtime.NumCPU()}
	)

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Render one QR code per line of a file",
		Long: `Render one QR code per non-empty line of a file ("-" reads stdin).

Artifacts are written to --dir as 0001.svg, 0002.svg, ... numbered by line.
All codes share the same style.`,
		Example: `  qrsmith batch urls.txt -d out --dots rounded -f svg,png
  cat urls.txt | qrsmith batch - --jobs 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, keepECC, err := sf.build(cmd)
			if err != nil {
				return err
			}
			formats := parseFormats(ef.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if opts.jobs < 1 {
				return errors.Config("--jobs must be at least 1")
			}

			items, err := readBatch(args[0], cmd.InOrStdin(), opts.dir)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			template := pipeline.Options{
				Style:     s,
				KeepECC:   keepECC,
				Formats:   formats,
				Precision: ef.precision,
				Scale:     ef.scale,
				Refresh:   ef.refresh,
			}
			return runBatch(cmd.Context(), runner, items, template, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", opts.dir, "output directory")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "number of concurrent renders")
	cmd.Flags().BoolVar(&opts.keepGoing, "keep-going", false, "continue after a failed line")
	sf.register(cmd)
	ef.register(cmd)

	return cmd
}

// readBatch reads one payload per non-empty line.
func readBatch(path string, stdin io.Reader, dir string) ([]batchItem, error) {
	var r io.Reader = stdin
	if path != "-" {
		if err := errors.ValidatePath(path); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open batch file: %w", err)
		}
		defer f.Close()
		r = f
	}

	// Lines are read whole so an oversized payload fails on its own line
	// (and can be skipped with --keep-going) instead of aborting the batch.
	var items []batchItem
	br := bufio.NewReader(r)
	for line := 1; ; line++ {
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read batch file: %w", err)
		}
		payload := strings.TrimRight(text, "\r\n")
		if strings.TrimSpace(payload) != "" {
			items = append(items, batchItem{
				line:    line,
				payload: payload,
				base:    filepath.Join(dir, fmt.Sprintf("%04d", line)),
			})
		}
		if err == io.EOF {
			break
		}
	}
	if len(items) == 0 {
		return nil, errors.Config("batch file has no payloads")
	}
	return items, nil
}

// runBatch renders items concurrently with at most opts.jobs in flight.
func runBatch(ctx context.Context, runner *pipeline.Runner, items []batchItem, template pipeline.Options, opts batchOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if err := os.MkdirAll(opts.dir, 0755); err != nil {
		return err
	}

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d codes", len(items)))
	spin.Start()
	defer spin.Stop()

	var done, failed, cached atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)
	for _, item := range items {
		g.Go(func() error {
			o := template
			o.Payload = item.payload
			result, err := runner.Execute(gctx, o)
			if err == nil {
				for format, data := range result.Artifacts {
					if err = writeArtifact(item.base+"."+format, data); err != nil {
						break
					}
				}
			}
			n := done.Add(1)
			spin.SetMessage(fmt.Sprintf("Rendering %d/%d", n, len(items)))

			if err != nil {
				failed.Add(1)
				if opts.keepGoing {
					logger.Warn("line failed", "line", item.line, "err", errors.UserMessage(err))
					return nil
				}
				return fmt.Errorf("line %d: %w", item.line, err)
			}
			if result.CacheInfo.RenderHit {
				cached.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	spin.Stop()
	if err != nil {
		return err
	}

	prog.done("batch rendered", "codes", done.Load()-failed.Load(), "cached", cached.Load(), "failed", failed.Load())
	printDetail("%d codes in %s · %d from cache · %d failed", done.Load()-failed.Load(), opts.dir, cached.Load(), failed.Load())
	if failed.Load() > 0 {
		return fmt.Errorf("%d of %d lines failed", failed.Load(), len(items))
	}
	return nil
}
