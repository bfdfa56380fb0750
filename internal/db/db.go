package db

import (
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"
)

func InitDB(dbURL string) *sql.DB {
	db, err := sql.Open("mysql", dbURL)
	if err != nil {
		log.Fatal("❌ Veritabanına bağlanılamadı:", err)
	}

	err = db.Ping()
	if err != nil {
		log.Fatal("❌ Veritabanı yanıt vermiyor:", err)
	}

	log.Println("✅ Veritabanına bağlanıldı")
	return db
}

// RunMigrations creates the key-value table backing session and cart records.
func RunMigrations(db *sql.DB) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS kv_entries (
			k VARCHAR(255) PRIMARY KEY,
			v LONGBLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		);`,
	}

	for _, q := range queries {
		_, err := db.Exec(q)
		if err != nil {
			log.Fatal("Migration hatası:", err)
		}
	}
	log.Println("Migration tamamlandı")
}
