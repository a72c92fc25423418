// cmd/faqbot/main.go
package main

import (
	"os"

	"github.com/0xcro3dile/faqbot-go/internal/commands"
)

var version = "dev"

func main() {
	if err := commands.Execute(version); err != nil {
		os.Exit(1)
	}
}
