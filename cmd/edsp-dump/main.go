// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// edsp-dump is a diagnostic EDSP solver. It reads a scenario, logs a summary
// of the request and universe, optionally writes the raw scenario to a file,
// and then answers with an error stanza: it never attempts to solve.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	edsp "github.com/contriboss/edsp-go"
)

var (
	configPath string
	inputPath  string
	dumpPath   string
	verbose    bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edsp-dump",
		Short: "Diagnostic EDSP solver that dumps scenarios instead of solving them",
		Long: `edsp-dump speaks APT's External Dependency Solver Protocol just far enough
to be useful for debugging: it parses the scenario on stdin, logs what APT
asked for and how large the package universe is, optionally saves the raw
scenario to a file, and replies with an error answer.

Point APT at it like any other external solver to capture real scenarios.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file path")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "read the scenario from a file instead of stdin")
	cmd.Flags().StringVar(&dumpPath, "dump", "", "write the raw scenario to this file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run() error {
	cfg := defaultConfig()
	if configPath != "" {
		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			return err
		}
	}
	if dumpPath != "" {
		cfg.DumpPath = dumpPath
	}

	setupLogging(cfg.LogLevel)

	in := io.Reader(os.Stdin)
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("open scenario: %w", err)
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}

	if cfg.DumpPath != "" {
		if err := os.WriteFile(cfg.DumpPath, raw, 0o644); err != nil {
			return fmt.Errorf("dump scenario: %w", err)
		}
		log.Info().Str("path", cfg.DumpPath).Msg("raw scenario written")
	}

	scenario, err := edsp.ReadScenario(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	log.Info().
		Str("request", scenario.Request.Request).
		Str("architecture", scenario.Request.Architecture).
		Bool("upgrade_all", bool(scenario.Request.UpgradeAll)).
		Bool("dist_upgrade", bool(scenario.Request.DistUpgrade)).
		Int("install", len(scenario.Request.Install)).
		Int("remove", len(scenario.Request.Remove)).
		Int("universe", len(scenario.Universe)).
		Msg("scenario summary")

	return edsp.WriteAnswer(os.Stdout, edsp.AnswerError{
		Error:   "EDSP-DUMP",
		Message: "edsp-dump only inspects scenarios, it cannot solve them",
	})
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
