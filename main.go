package main

import "github.com/facastdev/facast/cmd"

func main() {
	cmd.Execute()
}
