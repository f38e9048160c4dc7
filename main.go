package main

import "github.com/vachan-cat/cattrans/cmd"

func main() {
	cmd.Execute()
}
