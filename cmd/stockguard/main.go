package main

import "github.com/stockguard-io/stockguard/internal/cli"

func main() {
	cli.Execute()
}
