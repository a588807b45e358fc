// main is the entry point of the velocity CLI.
package main

import "github.com/eastside-atlas/velocity/cmd"

func main() {
	cmd.ExitOnError(cmd.Execute())
}
