// Command pinhash prints a bcrypt hash of a staff PIN for ADMIN_PIN or STAFF_PIN.
package main

import (
	"fmt"
	"log"
	"os"

	"stampcard/internal/pkg/password"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: pinhash <pin>")
		os.Exit(2)
	}

	hash, err := password.Hash(os.Args[1])
	if err != nil {
		log.Fatalf("❌ Failed to hash PIN: %v", err)
	}
	fmt.Println(hash)
}
