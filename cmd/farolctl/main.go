package main

import "github.com/farolia/farol/internal/cli"

func main() {
	cli.Execute()
}
