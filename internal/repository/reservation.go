package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libreserve/reservation-service/internal/errs"
	"github.com/libreserve/reservation-service/internal/model"
)

func reservationQuery() sq.SelectBuilder {
	return qb.Select("r.reservation_uid", "r.user_id", "r.book_id",
		"u.login", "b.title as book_title", "r.reserve_date", "r.return_date").
		From(reservationsTableName + " r").
		Join(fmt.Sprintf("%s u on u.id = r.user_id", usersTableName)).
		Join(fmt.Sprintf("%s b on b.id = r.book_id", booksTableName))
}

func (r *repository) GetReservation(ctx context.Context, reservationUid string) (model.Reservation, error) {
	query, args, err := reservationQuery().
		Where(sq.Eq{"r.reservation_uid": reservationUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}

	var rsv model.Reservation
	if err := r.db.GetContext(ctx, &rsv, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrNotFound
		}
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (r *repository) GetReservationsByUser(ctx context.Context, userID int) ([]model.Reservation, error) {
	query, args, err := reservationQuery().
		Where(sq.Eq{"r.user_id": userID}).
		OrderBy("r.reserve_date desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	var items []model.Reservation
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) GetOpenReservation(ctx context.Context, bookID, userID int) (model.Reservation, error) {
	query, args, err := reservationQuery().
		Where(sq.Eq{"r.book_id": bookID}).
		Where(sq.Eq{"r.user_id": userID}).
		Where("r.return_date is null").
		Limit(1).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}

	var rsv model.Reservation
	if err := r.db.GetContext(ctx, &rsv, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrNotFound
		}
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (r *repository) MostReservedBooks(ctx context.Context) ([]model.Book, error) {
	query, args, err := qb.Select("b.id", "b.title", "b.genre", "b.author", "b.reservation_status").
		From(reservationsTableName+" r").
		Join(fmt.Sprintf("%s b on b.id = r.book_id", booksTableName)).
		GroupBy("b.id", "b.title", "b.genre", "b.author", "b.reservation_status").
		OrderBy("count(*) desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

// CreateReservation flips the book to RESERVED and inserts the
// reservation inside one transaction. The conditional update is the
// gate: a concurrent reserve that lost the race affects zero rows and
// gets ErrBookNotAvailable.
func (r *repository) CreateReservation(ctx context.Context, book model.Book, user model.User) (model.Reservation, error) {
	rsv := model.Reservation{
		ReservationUid: uuid.NewString(),
		UserID:         user.ID,
		BookID:         book.ID,
		Login:          user.Login,
		BookTitle:      book.Title,
		ReserveDate:    time.Now().UTC(),
	}

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			fmt.Sprintf(`update %s set reservation_status = $1
	where id = $2 and reservation_status = $3`, booksTableName),
			model.StatusReserved, book.ID, model.StatusAvailable)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return errs.ErrBookNotAvailable
		}

		query, args, err := qb.Insert(reservationsTableName).
			Columns("reservation_uid", "user_id", "book_id", "reserve_date").
			Values(rsv.ReservationUid, rsv.UserID, rsv.BookID, rsv.ReserveDate).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return errs.ErrBookNotAvailable
			}
			r.log.Error("CreateReservation", zap.String("q", query), zap.Any("args", args))
			return err
		}
		return nil
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return rsv, nil
}

// CloseReservation flips the book back to AVAILABLE and saves the
// record carrying the original reservation uid with its return date
// set, as one transaction. The save is an upsert keyed by the uid, so
// the open record is closed in place.
func (r *repository) CloseReservation(ctx context.Context, rsv model.Reservation) (model.Reservation, error) {
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			fmt.Sprintf(`update %s set reservation_status = $1
	where id = $2 and reservation_status = $3`, booksTableName),
			model.StatusAvailable, rsv.BookID, model.StatusReserved)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return errs.ErrBookNotReserved
		}

		query, args, err := qb.Insert(reservationsTableName).
			Columns("reservation_uid", "user_id", "book_id", "reserve_date", "return_date").
			Values(rsv.ReservationUid, rsv.UserID, rsv.BookID, rsv.ReserveDate, rsv.ReturnDate).
			Suffix("on conflict (reservation_uid) do update set return_date = excluded.return_date").
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			r.log.Error("CloseReservation", zap.String("q", query), zap.Any("args", args))
			return err
		}
		return nil
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return rsv, nil
}
