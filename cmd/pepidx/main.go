// cmd/pepidx/main.go
package main

import (
	"pepidx/internal/app"
	"pepidx/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
