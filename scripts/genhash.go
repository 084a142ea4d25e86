package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Generates bcrypt hashes for seeding demo accounts.
//
//	go run scripts/genhash.go password1 password2 ...
func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"demo12345"}
	}

	for _, pass := range args {
		hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", pass, string(hash))
	}
}
