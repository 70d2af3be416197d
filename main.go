package main

import "github.com/styx-analyse/styx-session/cmd"

func main() {
	cmd.Execute()
}
