package main

import "github.com/jsphweid/fretboard/cmd"

func main() {
	cmd.Execute()
}
