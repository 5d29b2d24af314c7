package main

import "github.com/Member09/scaling-laws/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
