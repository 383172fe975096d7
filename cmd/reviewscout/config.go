// Copyright 2025 Alan Matykiewicz
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	defaultConfigPath = "reviewscout.yaml"
	defaultProvider   = "gemini"
	defaultOutputDir  = "."
)

type config struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	// APIKeyEnv names the environment variable holding the API key,
	// defaults to the provider's own variable.
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`

	OutputDir string `yaml:"output_dir"`
	// Timeout bounds the model call, e.g. "5m". Empty means no timeout.
	Timeout  string `yaml:"timeout"`
	Validate bool   `yaml:"validate"`

	timeout time.Duration
}

func ReadConfig(path string) (*config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var conf config
	if err := yaml.Unmarshal(file, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}

	if err := conf.setDefaults(); err != nil {
		return nil, err
	}

	return &conf, nil
}

// loadConfig reads the config file named by a, falling back to
// reviewscout.yaml in the working directory if it exists, and applies
// the command line overrides.
func loadConfig(a args) (*config, error) {
	var (
		conf *config
		err  error
	)

	switch {
	case a.Config != "":
		conf, err = ReadConfig(a.Config)
	default:
		conf, err = ReadConfig(defaultConfigPath)
		if errors.Is(err, fs.ErrNotExist) {
			conf, err = &config{}, nil
		}
	}
	if err != nil {
		return nil, err
	}

	if a.Provider != "" && a.Provider != conf.Provider {
		// Model and endpoint settings in the file belong to its provider.
		conf.Provider = a.Provider
		conf.Model = ""
		conf.APIKeyEnv = ""
		conf.BaseURL = ""
	}
	if a.Model != "" {
		conf.Model = a.Model
	}
	if a.OutDir != "" {
		conf.OutputDir = a.OutDir
	}
	if a.Validate {
		conf.Validate = true
	}

	if err := conf.setDefaults(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *config) setDefaults() error {
	if c.Provider == "" {
		c.Provider = defaultProvider
	}

	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout '%s': %w", c.Timeout, err)
		}
		c.timeout = d
	}

	return nil
}
