package main

import "datauri/internal/cli"

func main() {
	cli.Execute()
}
