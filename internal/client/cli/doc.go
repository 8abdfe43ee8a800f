// Package cli implements the interactive command-line client for the task
// tracker. It keeps the access token in memory only; every session starts
// logged out.
package cli
