package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hesusruiz/md2habr/habr"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var ErrNoInput = errors.New("no input file provided")

// processFile converts inputFileName and writes the result to outputFileName,
// or to stdout if outputFileName is empty
func processFile(inputFileName string, outputFileName string, v *habr.Variant, stdout io.Writer, sugar *zap.SugaredLogger) error {

	markup, err := habr.ConvertFile(inputFileName, v, sugar)
	if err != nil {
		return err
	}

	if len(outputFileName) == 0 {
		_, err = stdout.Write(markup)
		return err
	}

	return os.WriteFile(outputFileName, markup, 0664)
}

// processWatch checks periodically if an input file (inputFileName) has been modified, and if so
// it processes the file and writes the result to the output file (outputFileName)
func processWatch(inputFileName string, outputFileName string, v *habr.Variant, sugar *zap.SugaredLogger) error {

	var old_timestamp time.Time
	var current_timestamp time.Time

	// Loop forever
	for {

		// Get the modified timestamp of the input file
		info, err := os.Stat(inputFileName)
		if err != nil {
			return err
		}
		current_timestamp = info.ModTime()

		// If current modified timestamp is newer than the previous timestamp, process the file
		if old_timestamp.Before(current_timestamp) {
			old_timestamp = current_timestamp
			sugar.Infow("processing", "input", inputFileName, "output", outputFileName)

			// Conversion errors are reported but do not stop watching, the author may be fixing them
			err = processFile(inputFileName, outputFileName, v, nil, sugar)
			if err != nil {
				sugar.Errorw("conversion failed", "input", inputFileName, "error", err)
			}
		}

		// Check again in one second
		time.Sleep(1 * time.Second)

	}
}

// process is the main entry point of the program
func process(c *cli.Context) error {

	// Output file name command line parameter, stdout by default
	outputFileName := c.String("output")

	// Dry run
	dryrun := c.Bool("dryrun")

	var z *zap.Logger
	var err error

	// Setup the logging system
	if c.Bool("debug") {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	sugar := z.Sugar()
	defer sugar.Sync()

	// Get the input file name
	if !c.Args().Present() {
		return ErrNoInput
	}
	inputFileName := c.Args().First()

	// Select the variant of the conversion
	v := habr.Rustbook
	if c.Bool("generic") {
		v = habr.Generic
	}

	// This is useful for development.
	// If the user specified to watch, loop forever processing the input file when modified
	if c.Bool("watch") {
		if len(outputFileName) == 0 {
			return fmt.Errorf("watch mode needs an output file")
		}
		return processWatch(inputFileName, outputFileName, v, sugar)
	}

	sugar.Debugw("processing", "input", inputFileName, "output", outputFileName, "variant", v.Name)

	// Do nothing if flag dryrun was specified, but report any conversion error
	if dryrun {
		_, err = habr.ConvertFile(inputFileName, v, sugar)
		return err
	}

	return processFile(inputFileName, outputFileName, v, os.Stdout, sugar)
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "md2habr",
		Version:   "v0.02",
		Compiled:  time.Now(),
		Usage:     "convert a chapter of the Rust book from Markdown to Habrahabr markup",
		UsageText: "md2habr [options] INPUT_FILE",
		Action:    process,
		ArgsUsage: "INPUT_FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the markup to `FILE` (default is standard output)",
			},
			&cli.BoolFlag{
				Name:    "generic",
				Aliases: []string{"g"},
				Usage:   "do not apply the Rust book customizations",
			},
			&cli.BoolFlag{
				Name:    "dryrun",
				Aliases: []string{"n"},
				Usage:   "do not generate output, just process input file",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "watch the file for changes, requires an output file",
			},
		},
	}
}

func main() {

	if err := newApp().Run(os.Args); err != nil {
		panic(err)
	}

}
