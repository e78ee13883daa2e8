package main

import "github.com/khapa77/gong-dullabha/cmd"

func main() {
	cmd.Execute()
}
