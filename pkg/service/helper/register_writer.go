// Copyright 2026 The hostctl Authors
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
//


package helper

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/openbmc/hostctl/model"
)

const (
	// Size of the buffer each formatted argument must fit in,
	// including a terminator.
	argBufferSize = 16
)

var (
	// ErrFormat is returned when a register address or value cannot
	// be formatted as a helper argument.
	ErrFormat = errors.New("invalid register argument")
)

// IsFormatError returns true if the cause of the given error is ErrFormat.
func IsFormatError(err error) bool {
	return errors.Cause(err) == ErrFormat
}

// Config of the register writer helper.
type Config struct {
	// Path of the helper executable
	Path string
	// Name passed as argv[0]
	Name string
	// Backend argument (-b)
	Backend string
	// Processor index (-p)
	Processor int
}

// DefaultConfig returns the default pdbg configuration.
func DefaultConfig() Config {
	return Config{
		Path:      "/usr/bin/pdbg",
		Name:      "pdbg",
		Backend:   "kernel",
		Processor: 0,
	}
}

// RegisterWriter performs CFAM register writes through the helper.
type RegisterWriter struct {
	Config
	log           zerolog.Logger
	invoker       Invoker
	argBufferSize int
}

// NewRegisterWriter creates a new RegisterWriter that runs the helper
// with given invoker.
func NewRegisterWriter(conf Config, invoker Invoker, log zerolog.Logger) *RegisterWriter {
	return &RegisterWriter{
		Config:        conf,
		log:           log.With().Str("component", "register-writer").Logger(),
		invoker:       invoker,
		argBufferSize: argBufferSize,
	}
}

// Args returns the argument vector used to write the given register.
func (w *RegisterWriter) Args(rw model.RegisterWrite) ([]string, error) {
	addr, err := w.formatArg(rw.Address)
	if err != nil {
		return nil, errors.Wrap(err, "invalid address")
	}
	value, err := w.formatArg(rw.Value)
	if err != nil {
		return nil, errors.Wrap(err, "invalid value")
	}
	return []string{
		w.Name,
		"-b", w.Backend,
		fmt.Sprintf("-p%d", w.Processor),
		"putcfam",
		addr,
		value,
	}, nil
}

// PutCFAM writes the given value into the CFAM register at given address.
func (w *RegisterWriter) PutCFAM(rw model.RegisterWrite) error {
	argv, err := w.Args(rw)
	if err != nil {
		registerWritesTotal.WithLabelValues("format").Inc()
		w.log.Error().Err(err).Str("write", rw.String()).Msg("Cannot format register write")
		return err
	}
	if err := w.invoker.Run(w.Path, argv); err != nil {
		registerWritesTotal.WithLabelValues("failed").Inc()
		return errors.Wrapf(err, "putcfam %s", rw)
	}
	registerWritesTotal.WithLabelValues("success").Inc()
	return nil
}

func (w *RegisterWriter) formatArg(x uint32) (string, error) {
	s := fmt.Sprintf("0x%x", x)
	if len(s) >= w.argBufferSize {
		return "", errors.Wrapf(ErrFormat, "0x%x", x)
	}
	return s, nil
}
