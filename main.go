package main

import "github.com/theirongolddev/fuelsync/cmd"

func main() {
	cmd.Execute()
}
