package main

import "github.com/heimdex/heimdex-media-contracts/internal/cli"

func main() {
	cli.Main()
}
