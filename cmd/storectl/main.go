package main

import "github.com/GTDGit/store_api/cmd/storectl/commands"

func main() {
	commands.Execute()
}
