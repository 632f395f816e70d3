// Package main hosts the lepad entrypoint. It loads configuration, builds
// the daemon, and serves the archive API until interrupted.
package main
