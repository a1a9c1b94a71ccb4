package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/shopsavvy/catalog-server/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/ShopSavvy/data/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Session State Inspection ===")
	fmt.Println()

	cartSessions := 0
	totalLines := 0
	totalUnits := 0

	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("cart:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte("cart:")); it.ValidForPrefix([]byte("cart:")); it.Next() {
			item := it.Item()
			sessionID := strings.TrimPrefix(string(item.Key()), "cart:")

			err := item.Value(func(val []byte) error {
				var lines []domain.CartLine
				if err := json.Unmarshal(val, &lines); err != nil {
					return err
				}

				cartSessions++
				totalLines += len(lines)
				for _, l := range lines {
					totalUnits += l.Quantity
				}

				if cartSessions <= 5 {
					fmt.Printf("Cart: %s\n", sessionID)
					for _, l := range lines {
						fmt.Printf("  %s x%d\n", l.ProductID, l.Quantity)
					}
					fmt.Println()
				}
				return nil
			})
			if err != nil {
				log.Printf("Error reading cart %s: %v", sessionID, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Cart scan failed: %v", err)
	}

	compareSessions := 0
	compareIDs := 0

	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("compare:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte("compare:")); it.ValidForPrefix([]byte("compare:")); it.Next() {
			item := it.Item()
			sessionID := strings.TrimPrefix(string(item.Key()), "compare:")

			err := item.Value(func(val []byte) error {
				var ids []string
				if err := json.Unmarshal(val, &ids); err != nil {
					return err
				}

				compareSessions++
				compareIDs += len(ids)

				if compareSessions <= 5 {
					fmt.Printf("Compare: %s -> %s\n", sessionID, strings.Join(ids, ", "))
				}
				return nil
			})
			if err != nil {
				log.Printf("Error reading compare set %s: %v", sessionID, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Compare scan failed: %v", err)
	}

	fmt.Println()
	fmt.Println("=== Summary ===")
	fmt.Printf("Carts:        %d sessions, %d lines, %d units\n", cartSessions, totalLines, totalUnits)
	fmt.Printf("Compare sets: %d sessions, %d product refs\n", compareSessions, compareIDs)
}
