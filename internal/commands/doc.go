// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the command system behind the developer console.
//
// Commands are registered under a name together with a typed handler. The
// handler's parameter list is part of the command's identity, so the same
// name can be registered once per arity. Raw input lines are tokenized,
// resolved by (name, argument count), coerced into typed values and passed
// to the handler. Failures never escape the dispatcher; they are written
// to the log sink instead.
//
// # Key Types
//
//   - Registry: Named, arity-aware command descriptors
//   - Handler: Typed invocable built with Func0 .. Func4
//   - Dispatcher: Parses, resolves, coerces and invokes a line
//   - HintIndex: Prefix filter and cyclic selection for autocomplete
//
// # Usage
//
// Register and run a command:
//
//	reg := commands.NewRegistry(logger)
//	reg.Register("echo", commands.Func1(func(text string) error {
//	    buf.Push(text, logbuf.Info)
//	    return nil
//	}).Named("text"))
//
//	d := commands.NewDispatcher(reg, buf, logger)
//	d.Execute(`echo "hello world"`)
//
// Get hints:
//
//	hints := commands.NewHintIndex(reg).Filter("he")
//	// Returns [help, hexdump]
package commands
