package main

import "github.com/S-Arafin/City-Resolved/cmd/cityctl/cmd"

func main() {
	cmd.Execute()
}
