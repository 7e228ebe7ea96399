package main

import "buchat/cmd"

func main() {
	cmd.Execute()
}
