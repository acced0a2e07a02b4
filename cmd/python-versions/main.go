package main

import "python-versions/internal/cli"

func main() {
	cli.Execute()
}
