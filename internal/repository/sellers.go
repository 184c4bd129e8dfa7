package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Seller struct {
	ID          uuid.UUID
	Name        string
	Description string
	ImageRef    string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

const findSellerById = `
select id, name, description, image_ref, created_at, updated_at
from sellers
where id = $1
`

func (q *Queries) FindSellerById(c context.Context, id uuid.UUID) (Seller, error) {
	row := q.db.QueryRow(c, findSellerById, id)
	var s Seller
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.ImageRef, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const findSellers = `
select id, name, description, image_ref, created_at, updated_at
from sellers
order by name
`

func (q *Queries) FindSellers(c context.Context) ([]Seller, error) {
	rows, err := q.db.Query(c, findSellers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sellers := []Seller{}
	for rows.Next() {
		var s Seller
		err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.ImageRef, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		sellers = append(sellers, s)
	}
	return sellers, rows.Err()
}
