package main

import (
	"fmt"
	"os"

	"tangled.org/atscan.net/termbar/cmd/termbar/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "demo":
		err = commands.DemoCommand(os.Args[2:])
	case "unpack":
		err = commands.UnpackCommand(os.Args[2:])
	case "watch":
		err = commands.WatchCommand(os.Args[2:])
	case "version":
		err = commands.VersionCommand(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`termbar %s - Terminal Progress Bar Tool

Usage:
  termbar <command> [options]

Commands:
  demo       Run a simulated workload behind a progress bar
  unpack     Decompress a zstd file with a progress bar
  watch      Follow a remote job's progress over websocket
  version    Show version

Examples:
  termbar demo --total 200 --bottom
  termbar unpack archive.json.zst
  termbar watch wss://jobs.example.com/progress
  termbar demo --blink --log-every 25

`, commands.GetVersion())
}
