package main

import "github.com/openfvm/reactingfv/cmd"

func main() {
	cmd.Execute()
}
