package main

import "github.com/rskv-p/trie/cmd"

func main() {
	cmd.Execute()
}
