package main

import "github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/cli"

func main() {
	cli.Main()
}
