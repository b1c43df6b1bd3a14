package main

import "github.com/citeparse/citeparse/cmd"

func main() {
	cmd.Execute()
}
