package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Address struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Label      string
	Street     string
	City       string
	PostalCode string
	IsDefault  bool
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}

const insertAddress = `
insert into addresses (id, user_id, label, street, city, postal_code, is_default)
values ($1, $2, $3, $4, $5, $6, $7)
returning id, user_id, label, street, city, postal_code, is_default, created_at, updated_at
`

type InsertAddressParams struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Label      string
	Street     string
	City       string
	PostalCode string
	IsDefault  bool
}

func (q *Queries) InsertAddress(c context.Context, arg InsertAddressParams) (Address, error) {
	row := q.db.QueryRow(c, insertAddress,
		arg.ID,
		arg.UserID,
		arg.Label,
		arg.Street,
		arg.City,
		arg.PostalCode,
		arg.IsDefault,
	)
	return scanAddress(row)
}

const findAddressesByUserId = `
select id, user_id, label, street, city, postal_code, is_default, created_at, updated_at
from addresses
where user_id = $1
order by is_default desc, created_at
`

func (q *Queries) FindAddressesByUserId(c context.Context, userId uuid.UUID) ([]Address, error) {
	rows, err := q.db.Query(c, findAddressesByUserId, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	addresses := []Address{}
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}
	return addresses, rows.Err()
}

const updateAddress = `
update addresses
set label = $3, street = $4, city = $5, postal_code = $6, updated_at = now()
where id = $1 and user_id = $2
returning id, user_id, label, street, city, postal_code, is_default, created_at, updated_at
`

type UpdateAddressParams struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Label      string
	Street     string
	City       string
	PostalCode string
}

func (q *Queries) UpdateAddress(c context.Context, arg UpdateAddressParams) (Address, error) {
	row := q.db.QueryRow(c, updateAddress,
		arg.ID,
		arg.UserID,
		arg.Label,
		arg.Street,
		arg.City,
		arg.PostalCode,
	)
	return scanAddress(row)
}

const deleteAddress = `
delete from addresses
where id = $1 and user_id = $2
`

func (q *Queries) DeleteAddress(c context.Context, addressId, userId uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, deleteAddress, addressId, userId)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// setDefaultAddress flips the flag for the whole book in one statement so the
// user never ends up with two defaults. The exists guard keeps an unknown
// address id from clearing the current default.
const setDefaultAddress = `
update addresses
set is_default = (id = $1), updated_at = now()
where user_id = $2
  and exists (select 1 from addresses where id = $1 and user_id = $2)
`

func (q *Queries) SetDefaultAddress(c context.Context, addressId, userId uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, setDefaultAddress, addressId, userId)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanAddress(row scannable) (Address, error) {
	var a Address
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Label,
		&a.Street,
		&a.City,
		&a.PostalCode,
		&a.IsDefault,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
