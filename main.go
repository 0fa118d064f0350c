package main

import "github.com/notargets/sbpwave/cmd"

func main() {
	cmd.Execute()
}
