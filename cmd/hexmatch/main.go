package main

import "github.com/mcoot/hexmatch-go/internal/cli"

func main() {
	cli.Execute()
}
