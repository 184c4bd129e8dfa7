package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string
	Phone     string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

const insertUser = `
insert into users (id, name, email, password, phone)
values ($1, $2, $3, $4, $5)
returning id, name, email, password, phone, created_at, updated_at
`

type InsertUserParams struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Password string
	Phone    string
}

func (q *Queries) InsertUser(c context.Context, arg InsertUserParams) (User, error) {
	row := q.db.QueryRow(c, insertUser, arg.ID, arg.Name, arg.Email, arg.Password, arg.Phone)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const findUserByEmail = `
select id, name, email, password, phone, created_at, updated_at
from users
where email = $1
`

func (q *Queries) FindUserByEmail(c context.Context, email string) (User, error) {
	row := q.db.QueryRow(c, findUserByEmail, email)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const findUserById = `
select id, name, email, password, phone, created_at, updated_at
from users
where id = $1
`

func (q *Queries) FindUserById(c context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(c, findUserById, id)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
