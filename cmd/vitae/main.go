package main

import (
	"os"

	"horse.fit/vitae/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
