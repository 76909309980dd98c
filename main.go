/*
tctags lists the part-of-speech tags used in a tagged corpus and builds word
lexicons from it.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/qwwqe/tctags/config"
)

const (
	exitSuccess = 0
	exitFailure = 1
	exitUsage   = 2
)

var usage = `Usage: tctags [-config file] [-cpuprofile file] [-memprofile file] <command> [flags] <arg>

Commands:
  tags    [-skip-malformed] [-normalize] [-save name] <corpus file>
  poplex  [-name lexicon] [-save] [-list] <corpus file>
  fetch   [-o file] <url>
`

var errUsage = errors.New("usage error")

type command func(cfg *config.Config, args []string, stdout io.Writer) error

var commands = map[string]command{
	"tags":   tagsCommand,
	"poplex": poplexCommand,
	"fetch":  fetchCommand,
}

func main() {
	config.SetDefaultLogger()
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	flags := flag.NewFlagSet("tctags", flag.ContinueOnError)
	flags.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	configPath := flags.String("config", "", "path to a YAML configuration file")
	cpuProfile := flags.String("cpuprofile", "", "write a CPU profile to file")
	memProfile := flags.String("memprofile", "", "write a heap profile to file")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitSuccess
		}
		return exitUsage
	}

	if flags.NArg() == 0 {
		flags.Usage()
		return exitUsage
	}

	cmd, ok := commands[flags.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "tctags: unknown command %q\n", flags.Arg(0))
		flags.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return exitFailure
	}

	if *cpuProfile != "" {
		stop, err := startCPUProfile(*cpuProfile)
		if err != nil {
			log.Error().Err(err).Msg("Could not start CPU profile")
			return exitFailure
		}
		defer stop()
	}

	err = cmd(cfg, flags.Args()[1:], stdout)

	if *memProfile != "" {
		if err := writeHeapProfile(*memProfile); err != nil {
			log.Error().Err(err).Msg("Could not write memory profile")
		}
	}

	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintf(os.Stderr, "tctags %s: %v\n", flags.Arg(0), err)
		flags.Usage()
		return exitUsage
	case err != nil:
		log.Error().Err(err).Str("command", flags.Arg(0)).Msg("Command failed")
		return exitFailure
	}

	return exitSuccess
}
