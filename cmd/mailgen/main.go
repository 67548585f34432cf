// Command mailgen composes an RFC 5322/MIME message from command-line
// flags and streams it to stdout. It is a thin demonstration wrapper
// around the message package, not part of the library's core surface.
package main

import "github.com/nwidger/go-mail/cmd/mailgen/cmd"

func main() {
	cmd.Execute()
}
