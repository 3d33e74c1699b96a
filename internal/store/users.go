package store

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"golang.org/x/crypto/bcrypt"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

var userColumns = []string{"id", "email", "username", "hashed_password", "is_active", "is_superuser", "created_at"}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, "failed to hash password", err)
	}

	return string(hashed), nil
}

// VerifyPassword reports whether password matches the bcrypt hash.
func VerifyPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// CreateUser stores a new active user together with default settings.
func (s *Store) CreateUser(ctx context.Context, in types.UserCreate) (types.User, error) {
	hashed, err := HashPassword(in.Password)
	if err != nil {
		return types.User{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.User{}, errors.Wrap(errors.ErrCodeStoreFailure, "failed to begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	user := types.User{
		ID:             0,
		Email:          in.Email,
		Username:       in.Username,
		HashedPassword: hashed,
		IsActive:       true,
		IsSuperuser:    false,
		CreatedAt:      s.now(),
	}

	err = s.sq.
		Insert("users").
		Columns("email", "username", "hashed_password", "is_active", "is_superuser", "created_at").
		Values(user.Email, user.Username, user.HashedPassword, user.IsActive, user.IsSuperuser, user.CreatedAt).
		Suffix("RETURNING id").
		RunWith(tx).
		QueryRowContext(ctx).
		Scan(&user.ID)
	if err != nil {
		return types.User{}, queryError(err, "failed to create user %s", in.Email)
	}

	if err := s.upsertSettings(ctx, tx, types.DefaultUserSettings(user.ID)); err != nil {
		return types.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.User{}, errors.Wrap(errors.ErrCodeStoreFailure, "failed to commit user", err)
	}

	return user, nil
}

// GetUser returns the user with id.
func (s *Store) GetUser(ctx context.Context, id int64) (types.User, error) {
	return s.getUser(ctx, squirrel.Eq{"id": id}, "user %d not found", id)
}

// GetUserByEmail returns the user registered with email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (types.User, error) {
	return s.getUser(ctx, squirrel.Eq{"email": email}, "user %s not found", email)
}

// GetUserByUsername returns the user registered with username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (types.User, error) {
	return s.getUser(ctx, squirrel.Eq{"username": username}, "user %s not found", username)
}

func (s *Store) getUser(ctx context.Context, where squirrel.Eq, format string, args ...any) (types.User, error) {
	var user types.User

	err := s.sq.
		Select(userColumns...).
		From("users").
		Where(where).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&user.ID, &user.Email, &user.Username, &user.HashedPassword, &user.IsActive, &user.IsSuperuser, &user.CreatedAt)
	if err != nil {
		return types.User{}, queryError(err, format, args...)
	}

	return user, nil
}

// UpdateUser applies the non-empty fields of in. A new password is re-hashed.
func (s *Store) UpdateUser(ctx context.Context, id int64, in types.UserUpdate) (types.User, error) {
	update := s.sq.Update("users").Where(squirrel.Eq{"id": id})
	changed := false

	if in.Email != "" {
		update = update.Set("email", in.Email)
		changed = true
	}

	if in.Username != "" {
		update = update.Set("username", in.Username)
		changed = true
	}

	if in.Password != "" {
		hashed, err := HashPassword(in.Password)
		if err != nil {
			return types.User{}, err
		}

		update = update.Set("hashed_password", hashed)
		changed = true
	}

	if !changed {
		return s.GetUser(ctx, id)
	}

	result, err := update.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return types.User{}, queryError(err, "failed to update user %d", id)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return types.User{}, errors.Newf(errors.ErrCodeDataNotFound, "user %d not found", id)
	}

	return s.GetUser(ctx, id)
}

// Authenticate returns the user whose email and password match.
// Any mismatch is reported as not found so callers cannot probe for emails.
func (s *Store) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeDataNotFound) {
			return types.User{}, errors.New(errors.ErrCodeDataNotFound, "invalid email or password")
		}

		return types.User{}, err
	}

	if !VerifyPassword(user.HashedPassword, password) {
		return types.User{}, errors.New(errors.ErrCodeDataNotFound, "invalid email or password")
	}

	return user, nil
}

// GetSettings returns the settings of userID.
func (s *Store) GetSettings(ctx context.Context, userID int64) (types.UserSettings, error) {
	var (
		settings      types.UserSettings
		favorites     sql.NullString
		notifications sql.NullString
	)

	err := s.sq.
		Select("user_id", "theme", "default_timeframe", "favorite_stocks", "notification_settings").
		From("user_settings").
		Where(squirrel.Eq{"user_id": userID}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&settings.UserID, &settings.Theme, &settings.DefaultTimeframe, &favorites, &notifications)
	if err != nil {
		return types.UserSettings{}, queryError(err, "settings of user %d not found", userID)
	}

	settings.FavoriteStocks = []string{}
	settings.NotificationSettings = map[string]string{}

	if err := decodeJSON(favorites, &settings.FavoriteStocks); err != nil {
		return types.UserSettings{}, err
	}

	if err := decodeJSON(notifications, &settings.NotificationSettings); err != nil {
		return types.UserSettings{}, err
	}

	return settings, nil
}

// UpsertSettings creates or replaces the settings of settings.UserID.
func (s *Store) UpsertSettings(ctx context.Context, settings types.UserSettings) (types.UserSettings, error) {
	if _, err := s.GetUser(ctx, settings.UserID); err != nil {
		return types.UserSettings{}, err
	}

	if err := s.upsertSettings(ctx, s.db, settings); err != nil {
		return types.UserSettings{}, err
	}

	return s.GetSettings(ctx, settings.UserID)
}

func (s *Store) upsertSettings(ctx context.Context, runner squirrel.BaseRunner, settings types.UserSettings) error {
	if settings.FavoriteStocks == nil {
		settings.FavoriteStocks = []string{}
	}

	if settings.NotificationSettings == nil {
		settings.NotificationSettings = map[string]string{}
	}

	favorites, err := encodeJSON(settings.FavoriteStocks)
	if err != nil {
		return err
	}

	notifications, err := encodeJSON(settings.NotificationSettings)
	if err != nil {
		return err
	}

	_, err = s.sq.
		Insert("user_settings").
		Columns("user_id", "theme", "default_timeframe", "favorite_stocks", "notification_settings").
		Values(settings.UserID, settings.Theme, settings.DefaultTimeframe, favorites, notifications).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET " +
			"theme = EXCLUDED.theme, default_timeframe = EXCLUDED.default_timeframe, " +
			"favorite_stocks = EXCLUDED.favorite_stocks, notification_settings = EXCLUDED.notification_settings").
		RunWith(runner).
		ExecContext(ctx)
	if err != nil {
		return queryError(err, "failed to store settings of user %d", settings.UserID)
	}

	return nil
}
