package main

import (
	"os"

	"github.com/AlumniConnect/AlumniConnect/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
