package main

import "github.com/iksnae/chatwire/cmd"

func main() {
	cmd.Execute()
}
