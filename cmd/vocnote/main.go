package main

import "github.com/eslsoft/vocnote/cmd"

func main() {
	cmd.Execute()
}
