//go:build ignore

// Скрипт генерации значения ADMIN_PASSWORD_HASH.
// Запуск: go run scripts/hash-password.go <пароль>
package main

import (
	"fmt"
	"log"
	"os"

	"fitness-tracker/pkg/password"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("использование: go run scripts/hash-password.go <пароль>")
	}

	hash, err := password.Hash(os.Args[1])
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	fmt.Printf("ADMIN_PASSWORD_HASH='%s'\n", hash)
}
