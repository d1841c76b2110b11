package main

import "github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/cli"

func main() {
	cli.Execute()
}
