package main

import (
	"github.com/regcat/regcat/cmd"
)

func main() {
	cmd.Execute()
}
