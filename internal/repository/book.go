package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libreserve/reservation-service/internal/errs"
	"github.com/libreserve/reservation-service/internal/model"
)

func (r *repository) GetBookByTitle(ctx context.Context, title string) (model.Book, error) {
	query, args, err := qb.Select("id", "title", "genre", "author", "reservation_status").
		From(booksTableName).
		Where(sq.Eq{"title": title}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		r.log.Error("GetBookByTitle", zap.String("q", query), zap.Any("args", args))
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) GetBook(ctx context.Context, title, genre, author string) (model.Book, error) {
	query, args, err := qb.Select("id", "title", "genre", "author", "reservation_status").
		From(booksTableName).
		Where(sq.Eq{"title": title}).
		Where(sq.Eq{"genre": genre}).
		Where(sq.Eq{"author": author}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		r.log.Error("GetBook", zap.String("q", query), zap.Any("args", args))
		return model.Book{}, err
	}
	return book, nil
}
