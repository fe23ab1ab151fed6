// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console is the ownership root of the developer console.
//
// A Console creates one command registry, dispatcher, scrollback buffer,
// input history and hint index for a host session, registers the built-in
// commands, and exposes the small input surface a host needs: set the text,
// submit it, and deliver history and hint keys. Closing the console
// unregisters the built-ins and releases every display handle.
//
// # Built-in Commands
//
//	help                  list every command
//	help <command:string> show one command's signatures
//	echo <text:string>    print text at the configured severity
//	exit                  call the host's exit hook
//	clear                 clear the log
//	history               list submitted lines
//	scrollback <lines:int> resize the log
//
// # Usage
//
//	con := console.New(cfg.Console, console.WithLogger(logger))
//	defer con.Close()
//	con.Register("spawn", commands.Func2(game.Spawn).Named("kind", "count"))
//	con.Exec("spawn orc 3")
package console
