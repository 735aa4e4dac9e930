package main

import "github.com/alexiusacademia/beamcheck/cmd"

func main() {
	cmd.Execute()
}
