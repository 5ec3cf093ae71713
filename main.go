package main

import "github.com/mguzdial3/IndigoPrison/cmd"

func main() {
	cmd.Execute()
}
