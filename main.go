package main

import (
	"os"

	"github.com/klemjul/marachat/cmd"
	"github.com/klemjul/marachat/internal/app"
)

func main() {
	app := app.NewDefaultApp()
	if err := cmd.RootCommand(app).Execute(); err != nil {
		os.Exit(1)
	}
}
