package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"tangled.org/atscan.net/termbar"
)

// progressEvent is one message on a job's progress stream.
type progressEvent struct {
	Progress int    `json:"progress"`
	Total    int    `json:"total"`
	Message  string `json:"message,omitempty"`
}

// WatchCommand handles the watch subcommand
func WatchCommand(args []string) error {
	cmd := NewWatchCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func NewWatchCommand() *cobra.Command {
	var (
		configPath string
		bottom     bool
		blink      bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <ws-url>",
		Short: "Follow a remote job's progress over websocket",
		Long: `Follow a remote job's progress over websocket

Connects to a websocket endpoint emitting JSON progress events:

  {"progress": 42, "total": 100, "message": "optional log line"}

The first event fixes the bar's total. Progress values are absolute;
the bar advances by the delta from the previous event. Events carrying
a message are logged above the bar. The command ends when the server
closes the stream or progress reaches the total.`,

		Args: cobra.ExactArgs(1),

		Example: `  # Follow a job
  termbar watch wss://jobs.example.com/build/123/progress

  # Bottom-anchored bar
  termbar watch ws://localhost:8080/progress --bottom

  # Give up if the server is unreachable for 5s
  termbar watch ws://localhost:8080/progress --dial-timeout 5s`,

		RunE: func(cmd *cobra.Command, args []string) error {
			return watchProgress(args[0], configPath, bottom, blink, timeout)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to JSON config file")
	cmd.Flags().BoolVar(&bottom, "bottom", false, "anchor the bar to the bottom row")
	cmd.Flags().BoolVar(&blink, "blink", false, "use the blink-avoidance log ordering")
	cmd.Flags().DurationVar(&timeout, "dial-timeout", 10*time.Second, "websocket dial timeout")

	return cmd
}

func watchProgress(url, configPath string, bottom, blink bool, dialTimeout time.Duration) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	dialCtx, dialCancel := context.WithTimeout(ctx, dialTimeout)
	defer dialCancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer conn.Close()

	// Drop the connection when interrupted so the read loop unblocks.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

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

	var bar *termbar.Bar
	last := 0
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if bar != nil {
				bar.Stop()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			if ctx.Err() != nil {
				return fmt.Errorf("interrupted")
			}
			return fmt.Errorf("stream error: %w", err)
		}

		var ev progressEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			// Tolerate unrelated frames (pings, status chatter).
			continue
		}

		if bar == nil {
			if ev.Total < 1 {
				return fmt.Errorf("first event carries no total: %s", data)
			}
			bar, err = termbar.New(ev.Total, opts...)
			if err != nil {
				return err
			}
			if err := bar.Start(); err != nil {
				return err
			}
		}

		if ev.Message != "" {
			bar.Logf("%s", ev.Message)
		}

		if delta := ev.Progress - last; delta > 0 {
			if ev.Progress > bar.Total() {
				delta = bar.Total() - last
			}
			if delta > 0 {
				if err := bar.Tick(delta); err != nil {
					bar.Stop()
					return err
				}
				last += delta
			}
		}

		if last >= bar.Total() {
			if err := bar.Stop(); err != nil {
				return err
			}
			fmt.Printf("Job complete: %d/%d\n", last, bar.Total())
			return nil
		}
	}
}
