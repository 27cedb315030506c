package main

import "github.com/mealpost/mealpost/pkg/cli"

func main() {
	cli.Execute()
}
