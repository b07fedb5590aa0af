package repos

import (
	"github.com/jmoiron/sqlx"

	"maktaba/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, author, price, discount_price, stock,
  image_url, category, subcategory, description, status, date_added`

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  ORDER BY date_added DESC, id
	`)
	return out, err
}

func (r *ProductRepo) Upsert(p domain.Product) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO products(id,name,author,price,discount_price,stock,image_url,category,subcategory,description,status,date_added)
	  VALUES(:id,:name,:author,:price,:discount_price,:stock,:image_url,:category,:subcategory,:description,:status,:date_added)
	  ON CONFLICT(id) DO UPDATE SET
	    name=excluded.name, author=excluded.author, price=excluded.price,
	    discount_price=excluded.discount_price, stock=excluded.stock,
	    image_url=excluded.image_url, category=excluded.category,
	    subcategory=excluded.subcategory, description=excluded.description,
	    status=excluded.status, date_added=excluded.date_added
	`, p)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}
