/*
cmdpal is the storage and search backend for a command-lookup overlay:
type part of a shell command, get back matching commands with summaries
and usage examples from a local tldr-derived store.

Usage:

	cmdpal search git        ranked full-text search
	cmdpal show tar          one command with examples and content
	cmdpal recent            recently used commands
	cmdpal import pages.json load records through the save path
	cmdpal serve             host side of the display-process bridge
	cmdpal stats             store statistics
	cmdpal cache sweep       remove expired cache entries
*/
package main

import "github.com/cmdpal/cmdpal/internal/cli"

func main() {
	cli.Execute()
}
