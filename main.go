package main

import (
	"Gin_postgres_redis_book_exchange/commands"
	"os"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
