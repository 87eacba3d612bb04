// cmd/main.go
package main

import (
	"go-atm-cli/app"
)

func main() {
	app.Run()
}
