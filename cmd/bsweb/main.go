package main

import "github.com/momeni/bookshelf/cmd/bsweb/command"

func main() {
	command.Execute()
}
