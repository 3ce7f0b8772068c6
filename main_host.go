//go:build !tinygo

package main

import "picoclock/cmd"

func main() {
	cmd.Execute()
}
