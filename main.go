package main

import "github.com/polijecare/polijecare_web/cmd"

func main() {
	cmd.Execute()
}
