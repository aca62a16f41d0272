package main

import "github.com/cmmcleod/coriolis-sub002/internal/adapters/cli"

func main() {
	cli.Execute()
}
