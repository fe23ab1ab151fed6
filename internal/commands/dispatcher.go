// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"io"
	"runtime/debug"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/journal/internal/logbuf"
)

// =============================================================================
// DISPATCH STATE
// =============================================================================

// State is the dispatcher's position in the execute pipeline.
type State int32

const (
	StateIdle State = iota
	StateParsing
	StateResolving
	StateCoercing
	StateInvoking
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateParsing:
		return "parsing"
	case StateResolving:
		return "resolving"
	case StateCoercing:
		return "coercing"
	case StateInvoking:
		return "invoking"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Outcome is the terminal state of one Execute call.
type Outcome int

const (
	// Skipped means the line was blank
	Skipped Outcome = iota
	Succeeded
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result reports what happened to one line.
type Result struct {
	Outcome Outcome

	// Command is the resolved descriptor, nil when resolution failed
	Command *Descriptor

	// Args are the coerced argument values passed to the handler
	Args []any

	// Err is a *DispatchError when Outcome is Failed
	Err error
}

// Sink receives the user-visible messages the dispatcher produces.
// *logbuf.Buffer satisfies it.
type Sink interface {
	Push(text string, sev logbuf.Severity) logbuf.Entry
}

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher runs input lines against a registry. Only one line runs at a
// time: a line submitted while another is in flight, including from inside
// a handler, is rejected with ErrBusy rather than queued.
type Dispatcher struct {
	registry *Registry
	sink     Sink
	logger   *log.Logger
	state    atomic.Int32
}

// NewDispatcher creates a dispatcher. A nil logger discards diagnostics.
func NewDispatcher(registry *Registry, sink Sink, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		registry: registry,
		sink:     sink,
		logger:   logger,
	}
}

// State returns the current pipeline state.
func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// Execute parses, resolves, coerces and invokes one line. It always
// returns; every failure is written to the sink as a single entry.
func (d *Dispatcher) Execute(line string) Result {
	if !d.state.CompareAndSwap(int32(StateIdle), int32(StateParsing)) {
		d.sink.Push("Console is busy, ignored: "+line, logbuf.Warning)
		return Result{
			Outcome: Failed,
			Err:     &DispatchError{Command: FirstWord(line), Kind: ErrBusy},
		}
	}
	defer d.state.Store(int32(StateIdle))

	parsed := Parse(line)
	if parsed.Empty() {
		return Result{Outcome: Skipped}
	}

	d.state.Store(int32(StateResolving))
	desc, ok := d.registry.Resolve(parsed.Name, len(parsed.Args))
	if !ok {
		return d.notFound(parsed, nil)
	}

	d.state.Store(int32(StateCoercing))
	args, err := CoerceAll(parsed.Args, desc.Params)
	if err != nil {
		return d.notFound(parsed, err)
	}

	d.state.Store(int32(StateInvoking))
	if err := d.invoke(desc, args); err != nil {
		d.sink.Push(fmt.Sprintf("Command '%s' failed: %v", desc.Name, err), logbuf.Error)
		return Result{
			Outcome: Failed,
			Command: desc,
			Args:    args,
			Err:     &DispatchError{Command: desc.Name, Kind: ErrHandlerFault, Cause: err},
		}
	}

	d.logger.Debug("command executed", "command", desc.Name, "arity", desc.Arity())
	return Result{Outcome: Succeeded, Command: desc, Args: args}
}

// notFound reports a miss. Coercion failures are reported the same way as
// unknown commands; the detail is only kept on the returned error and in
// the debug log.
func (d *Dispatcher) notFound(parsed ParseResult, cause error) Result {
	if cause != nil {
		d.logger.Debug("argument coercion failed", "command", parsed.Name, "err", cause)
	}
	d.sink.Push("Command not found: "+parsed.Name, logbuf.Error)
	return Result{
		Outcome: Failed,
		Err:     &DispatchError{Command: parsed.Name, Kind: ErrCommandNotFound, Cause: cause},
	}
}

// invoke calls the handler and converts a panic into an error.
func (d *Dispatcher) invoke(desc *Descriptor, args []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("command panicked",
				"command", desc.Name,
				"panic", r,
				"stack", string(debug.Stack()))
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", rerr)
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
		}
	}()

	if err = desc.handler.call(args); err != nil {
		d.logger.Error("command returned error", "command", desc.Name, "err", err)
	}
	return err
}
