package main

import "blueprint/cmd/blueprintctl/commands"

func main() {
	commands.Execute()
}
