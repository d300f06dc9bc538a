package main

import (
	"fmt"
	"os"
)

const JobName = "mongo-migration"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
