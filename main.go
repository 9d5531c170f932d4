package main

import "tarcheck/cmd"

func main() {
	cmd.Execute()
}
