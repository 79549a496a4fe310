package main

import "github.com/polyglot/api/internal/cli"

func main() {
	cli.Execute()
}
