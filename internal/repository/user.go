package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/libreserve/reservation-service/internal/errs"
	"github.com/libreserve/reservation-service/internal/model"
)

func (r *repository) getUser(ctx context.Context, pred sq.Eq) (model.User, error) {
	query, args, err := qb.Select("id", "login", "email", "password_hash").
		From(usersTableName).
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) GetUserByLogin(ctx context.Context, login string) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"login": login})
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"email": email})
}

func (r *repository) GetUserByLoginAndEmail(ctx context.Context, login, email string) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"login": login, "email": email})
}
