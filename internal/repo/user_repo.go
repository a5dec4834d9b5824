package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/rvermeer/authd/internal/model"
	"github.com/rvermeer/authd/internal/pkg/dbutil"
	appErr "github.com/rvermeer/authd/internal/pkg/errors"
)

var userColumns = []string{
	"id", "email", "name", "password_hash", "is_verified",
	"verification_code", "verification_expires_at",
	"reset_token", "reset_expires_at",
	"last_login_at", "ctime", "mtime",
}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	data := map[string]interface{}{
		"id":                      user.ID,
		"email":                   user.Email,
		"name":                    user.Name,
		"password_hash":           user.PasswordHash,
		"is_verified":             user.IsVerified,
		"verification_code":       user.VerificationCode,
		"verification_expires_at": user.VerificationExpires,
		"reset_token":             user.ResetToken,
		"reset_expires_at":        user.ResetExpires,
		"last_login_at":           user.LastLoginAt,
		"ctime":                   user.Ctime,
		"mtime":                   user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

// Update replaces every mutable column of the record in one statement, so a
// single save is the unit the rest of the code reasons about.
func (r *UserRepo) Update(ctx context.Context, user *model.User) error {
	where := map[string]interface{}{"id": user.ID}
	update := map[string]interface{}{
		"email":                   user.Email,
		"name":                    user.Name,
		"password_hash":           user.PasswordHash,
		"is_verified":             user.IsVerified,
		"verification_code":       user.VerificationCode,
		"verification_expires_at": user.VerificationExpires,
		"reset_token":             user.ResetToken,
		"reset_expires_at":        user.ResetExpires,
		"last_login_at":           user.LastLoginAt,
		"mtime":                   user.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID})
}

// GetByVerificationCode only matches a code that has not expired yet, the
// same way the lookups below treat reset tokens.
func (r *UserRepo) GetByVerificationCode(ctx context.Context, code string, now int64) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{
		"verification_code":         code,
		"verification_expires_at >": now,
	})
}

func (r *UserRepo) GetByResetToken(ctx context.Context, token string, now int64) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{
		"reset_token":        token,
		"reset_expires_at >": now,
	})
}

func (r *UserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanUser(rows)
}

func scanUser(rows *sql.Rows) (*model.User, error) {
	var user model.User
	var verifyCode, resetToken sql.NullString
	var verifyExpires, resetExpires, lastLogin sql.NullInt64
	if err := rows.Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.IsVerified,
		&verifyCode, &verifyExpires,
		&resetToken, &resetExpires,
		&lastLogin, &user.Ctime, &user.Mtime,
	); err != nil {
		return nil, err
	}
	if verifyCode.Valid {
		user.VerificationCode = &verifyCode.String
	}
	if verifyExpires.Valid {
		user.VerificationExpires = &verifyExpires.Int64
	}
	if resetToken.Valid {
		user.ResetToken = &resetToken.String
	}
	if resetExpires.Valid {
		user.ResetExpires = &resetExpires.Int64
	}
	if lastLogin.Valid {
		user.LastLoginAt = &lastLogin.Int64
	}
	return &user, nil
}

// ClearExpiredVerifications drops verification codes whose expiry already
// passed. Lookups enforce expiry on their own; this only keeps stale secrets
// from lingering in storage.
func (r *UserRepo) ClearExpiredVerifications(ctx context.Context, now int64) (int64, error) {
	return r.clearExpired(ctx, "verification_code", "verification_expires_at", now)
}

func (r *UserRepo) ClearExpiredResets(ctx context.Context, now int64) (int64, error) {
	return r.clearExpired(ctx, "reset_token", "reset_expires_at", now)
}

func (r *UserRepo) clearExpired(ctx context.Context, tokenCol, expiresCol string, now int64) (int64, error) {
	where := map[string]interface{}{expiresCol + " <=": now}
	update := map[string]interface{}{tokenCol: nil, expiresCol: nil}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
