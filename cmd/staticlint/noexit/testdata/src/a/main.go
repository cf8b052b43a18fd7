package main

import (
	"log"
	"os"
)

func helper() {
	os.Exit(2)
}

func main() {
	defer helper()

	if len(os.Args) > 3 {
		log.Fatalf("too many args: %d", len(os.Args)) // want `вызов log.Fatalf в функции main запрещён`
	}

	cleanup := func() {
		os.Exit(3)
	}
	_ = cleanup

	log.Println("exiting")
	os.Exit(1) // want `вызов os.Exit в функции main запрещён`
}
