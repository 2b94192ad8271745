package main

import "github.com/diogo/askgemini/internal/commands"

func main() {
	commands.Execute()
}
