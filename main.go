// Package main is the entry point for the tokenlogin CLI.
package main

import (
	"tokenlogin/cli/cmd"
)

func main() {
	cmd.Execute()
}
