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
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// OutputLimit is the number of bytes of helper output kept for logging.
	OutputLimit = 1024
)

var (
	// ErrStart is returned when a helper process cannot be started.
	ErrStart = errors.New("failed to start helper")
)

// ExitError is returned when a helper exits with a non-zero exit code.
type ExitError struct {
	Path string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("failed to run cmd %s, exit code %d", e.Path, e.Code)
}

// AbnormalExitError is returned when a helper terminates without
// a normal exit status.
type AbnormalExitError struct {
	Path   string
	Reason string
}

func (e *AbnormalExitError) Error() string {
	return fmt.Sprintf("process failed to run cmd %s: %s", e.Path, e.Reason)
}

// IsExitError returns true if the cause of the given error is an ExitError.
func IsExitError(err error) bool {
	_, ok := errors.Cause(err).(*ExitError)
	return ok
}

// IsAbnormalExit returns true if the cause of the given error is an AbnormalExitError.
func IsAbnormalExit(err error) bool {
	_, ok := errors.Cause(err).(*AbnormalExitError)
	return ok
}

// IsStartFailure returns true if the cause of the given error is ErrStart.
func IsStartFailure(err error) bool {
	return errors.Cause(err) == ErrStart
}

// Invoker runs an external helper process.
type Invoker interface {
	// Run the executable at given path with given argument vector
	// (including argv[0]) and wait for it to terminate.
	Run(path string, argv []string) error
}

// Runner runs helper processes synchronously.
// There is no timeout; a hanging helper blocks the caller.
type Runner struct {
	log zerolog.Logger
}

var _ Invoker = &Runner{}

// NewRunner creates a new Runner.
func NewRunner(log zerolog.Logger) *Runner {
	return &Runner{
		log: log.With().Str("component", "helper-runner").Logger(),
	}
}

// Run the executable at given path with given argument vector.
// Stdout and stderr are captured as a single stream.
// Only a normal exit with code 0 is considered a success.
func (r *Runner) Run(path string, argv []string) error {
	log := r.log.With().Str("path", path).Strs("args", argv).Logger()
	output := &prefixBuffer{limit: OutputLimit}
	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Stdout: output,
		Stderr: output,
	}
	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)
	helperDuration.Observe(duration.Seconds())

	if output.Total() > 0 {
		log.Info().
			Str("output", output.String()).
			Str("size", humanize.Bytes(uint64(output.Total()))).
			Msg("Helper output")
	}
	if err == nil {
		helperInvocationsTotal.WithLabelValues("success").Inc()
		log.Debug().Dur("duration", duration).Msg("Helper succeeded")
		return nil
	}
	switch e := err.(type) {
	case *exec.ExitError:
		if e.Exited() {
			helperInvocationsTotal.WithLabelValues("exit-code").Inc()
			result := &ExitError{Path: path, Code: e.ExitCode()}
			log.Error().Int("exit-code", result.Code).Msg(result.Error())
			return result
		}
		reason := e.ProcessState.String()
		if ws, ok := e.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			reason = "signal: " + ws.Signal().String()
		}
		helperInvocationsTotal.WithLabelValues("abnormal").Inc()
		result := &AbnormalExitError{Path: path, Reason: reason}
		log.Error().Msg(result.Error())
		return result
	default:
		helperInvocationsTotal.WithLabelValues("start").Inc()
		log.Error().Err(err).Msg("Failed to start helper")
		return errors.Wrapf(ErrStart, "%s: %s", path, err)
	}
}

// prefixBuffer keeps the first limit bytes written to it
// and discards the rest.
type prefixBuffer struct {
	mutex sync.Mutex
	limit int
	data  []byte
	total int
}

func (b *prefixBuffer) Write(p []byte) (int, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.total += len(p)
	if room := b.limit - len(b.data); room > 0 {
		if len(p) > room {
			b.data = append(b.data, p[:room]...)
		} else {
			b.data = append(b.data, p...)
		}
	}
	return len(p), nil
}

// String returns the captured prefix.
func (b *prefixBuffer) String() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return string(b.data)
}

// Total returns the total number of bytes written.
func (b *prefixBuffer) Total() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.total
}
