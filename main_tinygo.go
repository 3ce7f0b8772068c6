//go:build tinygo && baremetal

package main

import (
	"picoclock/app"
	"picoclock/hal"
)

func main() {
	h := hal.New()
	if err := app.Run(h, app.DefaultConfig()); err != nil {
		h.Logger().WriteLineString("picoclock: " + err.Error())
	}
	select {}
}
