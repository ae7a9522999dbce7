package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/libreserve/reservation-service/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type BookCatalog interface {
	GetBookByTitle(ctx context.Context, title string) (model.Book, error)
	GetBook(ctx context.Context, title, genre, author string) (model.Book, error)
}

type UserDirectory interface {
	GetUserByLogin(ctx context.Context, login string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByLoginAndEmail(ctx context.Context, login, email string) (model.User, error)
}

type ReservationLedger interface {
	GetReservation(ctx context.Context, reservationUid string) (model.Reservation, error)
	GetReservationsByUser(ctx context.Context, userID int) ([]model.Reservation, error)
	GetOpenReservation(ctx context.Context, bookID, userID int) (model.Reservation, error)
	MostReservedBooks(ctx context.Context) ([]model.Book, error)
	CreateReservation(ctx context.Context, book model.Book, user model.User) (model.Reservation, error)
	CloseReservation(ctx context.Context, rsv model.Reservation) (model.Reservation, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName        = `books`
	usersTableName        = `users`
	reservationsTableName = `reservations`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
