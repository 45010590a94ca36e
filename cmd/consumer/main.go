package main

import "github.com/datafocus/go-inventory-sink/cmd/consumer/cmd"

func main() {
	cmd.Execute()
}
