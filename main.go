package main

import "github.com/KaramelBytes/triplefit/cmd"

func main() {
	cmd.Execute()
}
