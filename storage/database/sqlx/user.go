package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core"
	"github.com/eduspark/eduspark/core/user"
)

// sqlxDB is satisfied by both *sqlx.DB and *sqlx.Tx.
type sqlxDB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Rebind(query string) string
}

type userRepository struct {
	db sqlxDB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

// userRow shadows the array column so StructScan can handle it.
type userRow struct {
	user.User
	Roles pq.StringArray
}

func (r userRow) toUser() user.User {
	u := r.User
	u.Roles = []string(r.Roles)
	return u
}

func toUsers(rows []userRow) []user.User {
	users := make([]user.User, len(rows))
	for i, row := range rows {
		users[i] = row.toUser()
	}
	return users
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	query := `SELECT username, email FROM users WHERE (username = ? OR email = ?)`
	args := []interface{}{username, email}

	if len(excludedUsers) > 0 {
		ids := make([]string, len(excludedUsers))
		for i, usr := range excludedUsers {
			ids[i] = usr.ID
		}
		inQuery, inArgs, err := sqlx.In(` AND id NOT IN (?)`, ids)
		if err != nil {
			return errors.Wrap(err, "building exclusion clause")
		}
		query += inQuery
		args = append(args, inArgs...)
	}

	var matches []struct {
		Username string
		Email    string
	}
	if err := repo.db.SelectContext(ctx, &matches, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "checking username uniqueness")
	}
	for _, m := range matches {
		if m.Username == username {
			return user.ErrUsernameExists
		}
		if m.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.ID == "" {
		usr.ID = uuid.New().String()
	}
	var row userRow
	err := repo.db.GetContext(ctx, &row, `
		INSERT INTO users (id, first_name, last_name, username, email, primary_phone_number,
		                   is_active, roles, password_hash, created_at, updated_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING *`,
		usr.ID, usr.FirstName, usr.LastName, usr.Username, usr.Email, usr.PrimaryPhoneNumber,
		usr.IsActive, pq.Array(usr.Roles), usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt, usr.LastLogin,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return toUsers(rows), nil
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	var (
		where string
		args  []interface{}
	)
	switch {
	case filter.ID != "":
		where = `id = $1`
		args = []interface{}{filter.ID}
	case filter.Username != "":
		where = `username = $1`
		args = []interface{}{filter.Username}
	case filter.Email != "":
		where = `email = $1`
		args = []interface{}{filter.Email}
	case len(filter.UsernameOrEmail) == 2:
		where = `(username = $1 OR email = $2)`
		args = []interface{}{filter.UsernameOrEmail[0], filter.UsernameOrEmail[1]}
	default:
		return user.User{}, user.ErrNotFound
	}

	var row userRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM users WHERE `+where, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) FilterUsers(ctx context.Context, filter user.QueryFilter, ordering ...core.DBOrdering) ([]user.User, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf(
			`(first_name ILIKE %[1]s OR last_name ILIKE %[1]s OR username ILIKE %[1]s OR email ILIKE %[1]s)`, p))
	}
	if filter.Roles != nil {
		conds = append(conds, `roles && `+arg(pq.Array(filter.Roles)))
	}
	if filter.IsActive != nil {
		conds = append(conds, `is_active = `+arg(*filter.IsActive))
	}
	if !filter.CreatedFrom.IsZero() {
		conds = append(conds, `created_at >= `+arg(filter.CreatedFrom))
	}
	if !filter.CreatedTo.IsZero() {
		conds = append(conds, `created_at <= `+arg(filter.CreatedTo))
	}

	query := `SELECT * FROM users`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY ` + orderBy(ordering, "created_at DESC")

	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	return toUsers(rows), nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User, isActive ...*bool) (user.User, error) {
	var (
		sets []string
		args []interface{}
	)
	set := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if usr.FirstName != "" {
		set("first_name", usr.FirstName)
	}
	if usr.LastName != "" {
		set("last_name", usr.LastName)
	}
	if usr.Username != "" {
		set("username", usr.Username)
	}
	if usr.Email != "" {
		set("email", usr.Email)
	}
	if usr.PrimaryPhoneNumber.Valid {
		set("primary_phone_number", usr.PrimaryPhoneNumber)
	}
	if usr.Roles != nil {
		set("roles", pq.Array(usr.Roles))
	}
	if len(usr.PasswordHash) > 0 {
		set("password_hash", usr.PasswordHash)
	}
	if !usr.LastLogin.IsZero() {
		set("last_login", usr.LastLogin)
	}
	if len(isActive) > 0 && isActive[0] != nil {
		set("is_active", *isActive[0])
	}
	set("updated_at", usr.UpdatedAt)

	args = append(args, usr.ID)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING *`, strings.Join(sets, ", "), len(args))

	var row userRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) UpdateOrCreateUser(ctx context.Context, usr user.User) (user.User, error) {
	existing, err := repo.GetUser(ctx, user.GetFilter{Username: usr.Username})
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return repo.CreateUser(ctx, usr)
		}
		return user.User{}, err
	}
	usr.ID = existing.ID
	return repo.UpdateUser(ctx, usr, usr.IsActive)
}

func (repo *userRepository) DeleteUsersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}

// orderBy renders an ORDER BY clause from parsed query-string ordering terms.
func orderBy(ordering []core.DBOrdering, fallback string) string {
	if len(ordering) == 0 {
		return fallback
	}
	terms := make([]string, len(ordering))
	for i, ord := range ordering {
		terms[i] = ord.String()
	}
	return strings.Join(terms, ", ")
}
