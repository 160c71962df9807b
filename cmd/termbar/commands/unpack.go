package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valyala/gozstd"
	"tangled.org/atscan.net/termbar"
)

// UnpackCommand handles the unpack subcommand
func UnpackCommand(args []string) error {
	cmd := NewUnpackCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func NewUnpackCommand() *cobra.Command {
	var (
		configPath string
		bottom     bool
		blink      bool
	)

	cmd := &cobra.Command{
		Use:   "unpack <file.zst> [output]",
		Short: "Decompress a zstd file with a progress bar",
		Long: `Decompress a zstd file with a progress bar

Progress tracks compressed bytes consumed, so the bar is accurate even
when the decompressed size is unknown up front. A log line is emitted
at every 10% milestone without disturbing the bar.

If output is not specified, the .zst suffix is stripped from the input
name.`,

		Args: cobra.RangeArgs(1, 2),

		Example: `  # Decompress next to the input
  termbar unpack bundle_000001.jsonl.zst

  # Decompress to an explicit path
  termbar unpack data.zst /tmp/data.jsonl

  # Bottom-anchored bar with blink avoidance
  termbar unpack data.zst --bottom --blink`,

		RunE: func(cmd *cobra.Command, args []string) error {
			out := ""
			if len(args) == 2 {
				out = args[1]
			}
			return unpackFile(args[0], out, configPath, bottom, blink)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to JSON config file")
	cmd.Flags().BoolVar(&bottom, "bottom", false, "anchor the bar to the bottom row")
	cmd.Flags().BoolVar(&blink, "blink", false, "use the blink-avoidance log ordering")

	return cmd
}

func unpackFile(inPath, outPath, configPath string, bottom, blink bool) error {
	if outPath == "" {
		if !strings.HasSuffix(inPath, ".zst") {
			return fmt.Errorf("cannot derive output name: %s has no .zst suffix", inPath)
		}
		outPath = strings.TrimSuffix(inPath, ".zst")
	}

	info, err := os.Stat(inPath)
	if err != nil {
		return fmt.Errorf("failed to stat input: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("input file is empty: %s", inPath)
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer outFile.Close()

	fileCfg, err := loadFileConfig(configPath)
	if err != nil {
		return err
	}
	opts := barOptions(fileCfg)
	if bottom {
		opts = append(opts, termbar.WithDrawAtBottom(true))
	}
	if blink {
		opts = append(opts, termbar.WithAvoidBlink(true))
	}

	bar, err := termbar.New(int(info.Size()), opts...)
	if err != nil {
		return err
	}
	if err := bar.Start(); err != nil {
		return err
	}
	defer bar.Stop()

	cr := &countingReader{r: in}
	zr := gozstd.NewReader(cr)
	defer zr.Release()

	buf := make([]byte, 1<<20)
	ticked := int64(0)
	milestone := 1
	for {
		n, rerr := zr.Read(buf)
		if n > 0 {
			if _, werr := outFile.Write(buf[:n]); werr != nil {
				return fmt.Errorf("failed to write output: %w", werr)
			}
		}

		// Advance the bar by however much compressed input the
		// decompressor consumed since the last report.
		if delta := min(cr.n, info.Size()) - ticked; delta > 0 {
			if err := bar.Tick(int(delta)); err != nil {
				return err
			}
			ticked += delta
			for ticked*10 >= info.Size()*int64(milestone) && milestone <= 10 {
				bar.Logf("unpack: %d%% of %s", milestone*10, inPath)
				milestone++
			}
		}

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("failed to decompress: %w", rerr)
		}
	}

	if err := bar.Stop(); err != nil {
		return err
	}
	fmt.Printf("Unpacked %s -> %s\n", inPath, outPath)
	return nil
}

// countingReader counts bytes consumed from the underlying reader.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
