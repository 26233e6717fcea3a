package main

import "github.com/kgsd/fx-md-adapter/cmd"

func main() {
	cmd.Execute()
}
