package main

import "github.com/alharthy/mizania/internal/cli"

func main() {
	cli.Execute()
}
