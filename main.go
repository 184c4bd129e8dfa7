package main

import (
	"github.com/foodie-app/foodie/cmd"
)

func main() {
	cmd.Start()
}
