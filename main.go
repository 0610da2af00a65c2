package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/heartdash/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; HEARTDASH_* variables may come from the environment instead.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Error loading .env file:", err)
		os.Exit(1)
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
