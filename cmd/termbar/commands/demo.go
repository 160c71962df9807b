package commands

import (
	"flag"
	"fmt"
	"time"

	"tangled.org/atscan.net/termbar"
)

// DemoCommand handles the demo subcommand
func DemoCommand(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	total := fs.Int("total", 100, "total number of work units")
	delay := fs.Duration("delay", 50*time.Millisecond, "delay per work unit")
	step := fs.Int("step", 1, "units completed per tick")
	width := fs.Int("width", 0, "fixed bar width (0 = terminal width)")
	bottom := fs.Bool("bottom", false, "anchor the bar to the bottom row")
	blink := fs.Bool("blink", false, "use the blink-avoidance log ordering")
	clear := fs.Bool("clear", false, "clear the bar after it stops")
	logEvery := fs.Int("log-every", 0, "emit a log line every N units (0 = never)")
	configPath := fs.String("config", "", "path to JSON config file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fileCfg, err := loadFileConfig(*configPath)
	if err != nil {
		return err
	}

	opts := barOptions(fileCfg)
	if *width != 0 {
		opts = append(opts, termbar.WithWidth(*width))
	}
	if *bottom {
		opts = append(opts, termbar.WithDrawAtBottom(true))
	}
	if *blink {
		opts = append(opts, termbar.WithAvoidBlink(true))
	}
	if *clear {
		opts = append(opts, termbar.WithClearAfterStop(true))
	}

	bar, err := termbar.New(*total, opts...)
	if err != nil {
		return err
	}
	if err := bar.Start(); err != nil {
		return err
	}
	start := time.Now()

	for done := 0; done < *total; {
		time.Sleep(*delay)

		n := *step
		if done+n > *total {
			n = *total - done
		}
		if err := bar.Tick(n); err != nil {
			bar.Stop()
			return err
		}
		done += n

		if *logEvery > 0 && done%*logEvery == 0 && done < *total {
			bar.Logf("processed %d/%d units", done, *total)
		}
	}

	if err := bar.Stop(); err != nil {
		return err
	}
	fmt.Printf("Done: %d units in %s\n", *total, time.Since(start).Round(time.Millisecond))
	return nil
}
