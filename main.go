package main

import (
	"db-scan/cmd"
)

func main() {
	cmd.Execute()
}
