package main

import "github.com/audite/eartrain/cmd"

func main() {
	cmd.Execute()
}
