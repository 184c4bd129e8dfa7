package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	SellerID        uuid.UUID
	Status          OrderStatus
	Subtotal        pgtype.Numeric
	DeliveryFee     pgtype.Numeric
	Tax             pgtype.Numeric
	Tip             pgtype.Numeric
	Total           pgtype.Numeric
	DeliveryAddress string
	PaymentMethod   string
	Instructions    string
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type OrderLine struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	Title        string
	UnitPrice    pgtype.Numeric
	Quantity     int32
	Size         string
	Color        string
	Instructions string
}

const insertOrder = `
insert into orders (
	id, user_id, seller_id, status, subtotal, delivery_fee, tax, tip, total,
	delivery_address, payment_method, instructions
)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
returning id, user_id, seller_id, status, subtotal, delivery_fee, tax, tip, total,
	delivery_address, payment_method, instructions, created_at, updated_at
`

type InsertOrderParams struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	SellerID        uuid.UUID
	Status          OrderStatus
	Subtotal        pgtype.Numeric
	DeliveryFee     pgtype.Numeric
	Tax             pgtype.Numeric
	Tip             pgtype.Numeric
	Total           pgtype.Numeric
	DeliveryAddress string
	PaymentMethod   string
	Instructions    string
}

func (q *Queries) InsertOrder(c context.Context, arg InsertOrderParams) (Order, error) {
	row := q.db.QueryRow(c, insertOrder,
		arg.ID,
		arg.UserID,
		arg.SellerID,
		arg.Status,
		arg.Subtotal,
		arg.DeliveryFee,
		arg.Tax,
		arg.Tip,
		arg.Total,
		arg.DeliveryAddress,
		arg.PaymentMethod,
		arg.Instructions,
	)
	return scanOrder(row)
}

const insertOrderLine = `
insert into order_lines (id, order_id, product_id, title, unit_price, quantity, size, color, instructions)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

type InsertOrderLineParams struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	Title        string
	UnitPrice    pgtype.Numeric
	Quantity     int32
	Size         string
	Color        string
	Instructions string
}

func (q *Queries) InsertOrderLine(c context.Context, arg InsertOrderLineParams) error {
	_, err := q.db.Exec(c, insertOrderLine,
		arg.ID,
		arg.OrderID,
		arg.ProductID,
		arg.Title,
		arg.UnitPrice,
		arg.Quantity,
		arg.Size,
		arg.Color,
		arg.Instructions,
	)
	return err
}

const findOrderById = `
select id, user_id, seller_id, status, subtotal, delivery_fee, tax, tip, total,
	delivery_address, payment_method, instructions, created_at, updated_at
from orders
where id = $1 and user_id = $2
`

type FindOrderByIdParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) FindOrderById(c context.Context, arg FindOrderByIdParams) (Order, error) {
	row := q.db.QueryRow(c, findOrderById, arg.ID, arg.UserID)
	return scanOrder(row)
}

const findOrdersByUserId = `
select id, user_id, seller_id, status, subtotal, delivery_fee, tax, tip, total,
	delivery_address, payment_method, instructions, created_at, updated_at
from orders
where user_id = $1
order by created_at desc
`

func (q *Queries) FindOrdersByUserId(c context.Context, userId uuid.UUID) ([]Order, error) {
	rows, err := q.db.Query(c, findOrdersByUserId, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders := []Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

const findOrderLinesByOrderId = `
select id, order_id, product_id, title, unit_price, quantity, size, color, instructions
from order_lines
where order_id = $1
order by id
`

func (q *Queries) FindOrderLinesByOrderId(c context.Context, orderId uuid.UUID) ([]OrderLine, error) {
	rows, err := q.db.Query(c, findOrderLinesByOrderId, orderId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	lines := []OrderLine{}
	for rows.Next() {
		var l OrderLine
		err := rows.Scan(
			&l.ID,
			&l.OrderID,
			&l.ProductID,
			&l.Title,
			&l.UnitPrice,
			&l.Quantity,
			&l.Size,
			&l.Color,
			&l.Instructions,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

const updateOrderStatus = `
update orders
set status = $3, updated_at = now()
where id = $1 and user_id = $2
returning id, user_id, seller_id, status, subtotal, delivery_fee, tax, tip, total,
	delivery_address, payment_method, instructions, created_at, updated_at
`

type UpdateOrderStatusParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Status OrderStatus
}

func (q *Queries) UpdateOrderStatus(c context.Context, arg UpdateOrderStatusParams) (Order, error) {
	row := q.db.QueryRow(c, updateOrderStatus, arg.ID, arg.UserID, arg.Status)
	return scanOrder(row)
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row scannable) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.SellerID,
		&o.Status,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.Tax,
		&o.Tip,
		&o.Total,
		&o.DeliveryAddress,
		&o.PaymentMethod,
		&o.Instructions,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}
