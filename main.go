package main

import "github.com/inforexx/rbackup/cmd"

func main() {
	cmd.Execute()
}
