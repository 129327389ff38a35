package main

import "notewell/internal/cli"

func main() {
	cli.Execute()
}
