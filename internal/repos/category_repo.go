package repos

import (
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"maktaba/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

type categoryRow struct {
	ID                string `db:"id"`
	Name              string `db:"name"`
	Icon              string `db:"icon"`
	Description       string `db:"description"`
	ImageURL          string `db:"image_url"`
	SubcategoriesJSON string `db:"subcategories_json"`
}

func (row categoryRow) toDomain() domain.Category {
	c := domain.Category{
		ID: row.ID, Name: row.Name, Icon: row.Icon,
		Description: row.Description, ImageURL: row.ImageURL,
	}
	// A malformed column yields no subcategories rather than an error.
	_ = json.Unmarshal([]byte(row.SubcategoriesJSON), &c.Subcategories)
	return c
}

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var rows []categoryRow
	if err := r.db.Select(&rows, `
	  SELECT id, name, icon, description, image_url, subcategories_json
	  FROM categories
	  ORDER BY name
	`); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CategoryRepo) Upsert(c domain.Category) error {
	subs, err := json.Marshal(c.Subcategories)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
	  INSERT INTO categories(id,name,icon,description,image_url,subcategories_json)
	  VALUES(?,?,?,?,?,?)
	  ON CONFLICT(id) DO UPDATE SET
	    name=excluded.name, icon=excluded.icon, description=excluded.description,
	    image_url=excluded.image_url, subcategories_json=excluded.subcategories_json
	`, c.ID, c.Name, c.Icon, c.Description, c.ImageURL, string(subs))
	return err
}

func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
