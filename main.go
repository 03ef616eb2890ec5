package main

import "finlife/cli"

func main() {
	cli.Execute()
}
