package repos

import (
	"encoding/json"
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"maktaba/internal/domain"
)

// OpenDB opens the local catalog mirror and seeds it from the bundled
// dataset when empty, so a fresh DB_DSN behaves like the fallback mode
// but with durable admin edits.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  icon TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  subcategories_json TEXT NOT NULL DEFAULT '[]'
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories(name);

CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  author TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  discount_price NUMERIC NOT NULL DEFAULT 0,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  image_url TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  subcategory TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT '',
  date_added TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_date_added ON products(date_added);

CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  avatar_url TEXT NOT NULL DEFAULT '',
  google_id TEXT NOT NULL DEFAULT '',
  last_sign_in TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting bundled categories/products")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, c := range domain.FallbackCategories() {
		subs, _ := json.Marshal(c.Subcategories)
		if _, err := tx.Exec(`INSERT INTO categories(id,name,icon,description,image_url,subcategories_json)
			VALUES(?,?,?,?,?,?)`, c.ID, c.Name, c.Icon, c.Description, c.ImageURL, string(subs)); err != nil {
			return err
		}
	}
	for _, p := range domain.FallbackProducts() {
		if _, err := tx.Exec(`INSERT INTO products(id,name,author,price,discount_price,stock,image_url,category,subcategory,description,status,date_added)
			VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
			p.ID, p.Name, p.Author, p.Price, p.DiscountPrice, p.Stock, p.ImageURL,
			p.Category, p.Subcategory, p.Description, p.Status, p.DateAdded); err != nil {
			return err
		}
	}
	return tx.Commit()
}
