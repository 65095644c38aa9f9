package main

import "github.com/silay-drrmo/drrmo-api/internal/cli"

func main() {
	cli.Execute()
}
