// Command csim simulates a set-associative cache over a memory trace read from
// the standard input.
package main

import "github.com/sarchlab/cachesim/csim/cmd"

func main() {
	cmd.Execute()
}
