package main

import "github.com/kamusis/regdoc/cmd"

func main() {
	cmd.Execute()
}
