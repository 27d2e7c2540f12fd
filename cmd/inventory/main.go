package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vsinha/inventory/pkg/interfaces/cli/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if len(os.Args) > 1 && os.Args[1] == "generate" {
		err = runGenerate(ctx, os.Args[2:])
	} else {
		err = runInventory(ctx, os.Args[1:])
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runInventory(ctx context.Context, args []string) error {
	config, err := commands.ParseConfig(args, ".env")
	if err != nil {
		return err
	}

	cmd := commands.NewInventoryCommand(config, os.Stdout, os.Stderr)
	return cmd.Execute(ctx)
}

func runGenerate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)

	var (
		records    = fs.Int("records", 0, "Number of records to generate")
		categories = fs.Int("categories", 0, "Number of categories to use (default: all)")
		coverage   = fs.Float64("coverage", 1.5, "Stock multiplier against threshold")
		output     = fs.String("output", "", "Output file (.json or .csv)")
		seed       = fs.Int64("seed", 0, "Random seed for reproducible generation")
		verbose    = fs.Bool("verbose", false, "Enable verbose output")
		help       = fs.Bool("help", false, "Show help message")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}

	config := commands.GenerateConfig{
		Records:    *records,
		Categories: *categories,
		Coverage:   *coverage,
		OutputFile: *output,
		Seed:       *seed,
		Help:       *help,
		Verbose:    *verbose,
	}

	cmd := commands.NewGenerateCommand(config, os.Stdout)
	return cmd.Execute(ctx)
}
