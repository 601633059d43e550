package main

import "github.com/latch-project/latch/internal/cli"

func main() {
	cli.Execute()
}
