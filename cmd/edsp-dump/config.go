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

package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type config struct {
	DumpPath string
	LogLevel string
}

func defaultConfig() config {
	return config{LogLevel: "info"}
}

// fileConfig is the config.toml key mapping.
type fileConfig struct {
	DumpPath string `toml:"dump_path"`
	LogLevel string `toml:"log_level"`
}

// loadConfig reads a TOML config file, overlaying defined keys on the
// defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load edsp-dump config: %w", err)
	}

	if meta.IsDefined("dump_path") {
		cfg.DumpPath = strings.TrimSpace(raw.DumpPath)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	return cfg, nil
}
