package main

import "github.com/quocvuong92/cmdtree/cmd"

func main() {
	cmd.Execute()
}
