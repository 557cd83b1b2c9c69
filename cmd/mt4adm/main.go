package main

import "github.com/rustyeddy/mt4adm/cli"

func main() {
	cli.Execute()
}
