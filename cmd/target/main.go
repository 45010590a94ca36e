package main

import "github.com/datafocus/go-inventory-sink/cmd/target/cmd"

func main() {
	cmd.Execute()
}
