// Package main hosts the lepa CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into HTTP
// calls against the daemon: session management, recording and story CRUD,
// blob uploads, playback control, and configuration scaffolding. It
// centralizes configuration resolution and server discovery so subcommands
// can focus on user experience instead of wiring.
package main
