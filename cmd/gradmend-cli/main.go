package main

import "gradmend/cmd/gradmend-cli/cmd"

func main() {
	cmd.Execute()
}
