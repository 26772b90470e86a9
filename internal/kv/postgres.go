package kv

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore хранит слоты в одной таблице kv_slots(key, value JSONB).
// Схема создаётся миграциями (каталог migrations).
type PostgresStore struct {
	DB *sql.DB
}

// NewPostgresStore подключается к PostgreSQL и проверяет соединение.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	const op = "kv.NewPostgresStore"

	db, err := sql.Open("pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &PostgresStore{DB: db}, nil
}

// Get десериализует значение слота в result, false — если строка отсутствует.
func (s *PostgresStore) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "kv.PostgresStore.Get"

	var raw []byte
	query := `SELECT value FROM kv_slots WHERE key = $1`
	err := s.DB.QueryRowContext(ctx, query, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сериализует значение и перезаписывает слот (upsert).
func (s *PostgresStore) Set(ctx context.Context, key string, value any) error {
	const op = "kv.PostgresStore.Set"

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO kv_slots (key, value, updated_at)
			  VALUES ($1, $2, NOW())
			  ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`
	if _, err := s.DB.ExecContext(ctx, query, key, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет строку слота. Отсутствующая строка — no-op.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	const op = "kv.PostgresStore.Delete"

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM kv_slots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с базой данных.
func (s *PostgresStore) Close() error {
	return s.DB.Close()
}
