package main

import (
	"github.com/okuznetsov/battleship-go/internal/cli"
)

func main() {
	cli.Execute()
}
