package main

import "github.com/rondev89/password-lab/cmd"

func main() {
	cmd.Execute()
}
