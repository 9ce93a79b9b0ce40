// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package config loads rawpack settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/dacapoday/rawout"
	"github.com/dacapoday/rawout/output"
)

// File mirrors the YAML document.
//
//	buffer_size: 4096
//	max_buffer_size: 65536
//	unbounded: false
//	growth_factor: 2
//	log:
//	  level: info
//	metrics: true
type File struct {
	BufferSize    int  `yaml:"buffer_size"`
	MaxBufferSize int  `yaml:"max_buffer_size"`
	Unbounded     bool `yaml:"unbounded"`
	GrowthFactor  int  `yaml:"growth_factor"`
	Log           Log  `yaml:"log"`
	Metrics       bool `yaml:"metrics"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Default returns the settings used without a config file.
func Default() *File {
	return &File{
		BufferSize: output.DefaultBufferSize,
		Log:        Log{Level: "info"},
	}
}

// Load reads path over the defaults.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes data over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	f := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed parsing config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the buffer settings the way output.New would.
func (f *File) Validate() error {
	if _, err := output.New(f.Output(nil, nil)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := f.Level(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Output returns the buffer options with the given sink and observer.
func (f *File) Output(w io.Writer, hook rawout.Observer) output.Config {
	return output.Config{
		Size:    f.BufferSize,
		Max:     f.MaxBufferSize,
		NoLimit: f.Unbounded,
		Factor:  f.GrowthFactor,
		Writer:  w,
		Hook:    hook,
	}
}

// Level parses the log level.
func (f *File) Level() (zapcore.Level, error) {
	if f.Log.Level == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(f.Log.Level)
}
