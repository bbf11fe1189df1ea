package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/innerventory/server/cmd/server/cmd"
)

func main() {
	loadLocalEnv()
	cmd.Execute()
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not read .env: %v\n", err)
	}
}
