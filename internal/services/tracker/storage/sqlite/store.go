package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/soliyanakewani/Project-Management-System/internal/platform/storage/sqlitemigrate"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/storage"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for tracker state.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a tracker SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_pragma=foreign_keys(ON)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := ensureForeignKeysEnabled(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping verifies the database connection is usable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.sqlDB.PingContext(ctx)
}

func (s *Store) runMigrations() error {
	return sqlitemigrate.ApplyMigrations(s.sqlDB, migrations.FS)
}

func ensureForeignKeysEnabled(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("sqlite db is required")
	}
	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("check sqlite foreign key pragma: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("sqlite foreign keys are disabled")
	}
	return nil
}

// PutProject upserts one project row.
func (s *Store) PutProject(ctx context.Context, record storage.ProjectRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeProjectRecord(record)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
	INSERT INTO projects (id, name, description, status, created_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		description = excluded.description,
		status = excluded.status
	`,
		normalized.ID,
		normalized.Name,
		normalized.Description,
		normalized.Status,
		toMillis(normalized.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put project: %w", err)
	}
	return nil
}

// GetProject loads one project row by ID.
func (s *Store) GetProject(ctx context.Context, projectID string) (storage.ProjectRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.ProjectRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ProjectRecord{}, fmt.Errorf("storage is not configured")
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return storage.ProjectRecord{}, fmt.Errorf("project id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, name, description, status, created_at
FROM projects
WHERE id = ?
`, projectID)
	record, err := scanProject(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ProjectRecord{}, storage.ErrNotFound
		}
		return storage.ProjectRecord{}, fmt.Errorf("get project: %w", err)
	}
	return record, nil
}

// ListProjects lists all project rows oldest-first.
func (s *Store) ListProjects(ctx context.Context) ([]storage.ProjectRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, name, description, status, created_at
FROM projects
ORDER BY created_at ASC, id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var results []storage.ProjectRecord
	for rows.Next() {
		record, scanErr := scanProject(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("scan project row: %w", scanErr)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project rows: %w", err)
	}
	return results, nil
}

// UpdateProjectStatus overwrites only the status column of one project row.
func (s *Store) UpdateProjectStatus(ctx context.Context, projectID string, projectStatus string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	projectID = strings.TrimSpace(projectID)
	projectStatus = strings.TrimSpace(projectStatus)
	if projectID == "" {
		return fmt.Errorf("project id is required")
	}
	if projectStatus == "" {
		return fmt.Errorf("project status is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE projects SET status = ? WHERE id = ?
`, projectStatus, projectID)
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project status rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteProject removes one project row; task rows cascade.
func (s *Store) DeleteProject(ctx context.Context, projectID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return fmt.Errorf("project id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// PutTask upserts one task row. A missing parent project surfaces as
// storage.ErrNotFound via the foreign key constraint.
func (s *Store) PutTask(ctx context.Context, record storage.TaskRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeTaskRecord(record)
	if err != nil {
		return err
	}

	var assignedTo sql.NullString
	if normalized.AssignedTo != nil {
		assignedTo = sql.NullString{String: *normalized.AssignedTo, Valid: true}
	}
	var progress sql.NullInt64
	if normalized.Progress != nil {
		progress = sql.NullInt64{Int64: int64(*normalized.Progress), Valid: true}
	}

	_, err = s.sqlDB.ExecContext(ctx, `
	INSERT INTO tasks (id, project_id, name, description, status, assigned_to, progress, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		project_id = excluded.project_id,
		name = excluded.name,
		description = excluded.description,
		status = excluded.status,
		assigned_to = excluded.assigned_to,
		progress = excluded.progress
	`,
		normalized.ID,
		normalized.ProjectID,
		normalized.Name,
		normalized.Description,
		normalized.Status,
		assignedTo,
		progress,
		toMillis(normalized.CreatedAt),
	)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("put task: %w", err)
	}
	return nil
}

// GetTask loads one task row by ID.
func (s *Store) GetTask(ctx context.Context, taskID string) (storage.TaskRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.TaskRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.TaskRecord{}, fmt.Errorf("storage is not configured")
	}
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return storage.TaskRecord{}, fmt.Errorf("task id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, project_id, name, description, status, assigned_to, progress, created_at
FROM tasks
WHERE id = ?
`, taskID)
	record, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.TaskRecord{}, storage.ErrNotFound
		}
		return storage.TaskRecord{}, fmt.Errorf("get task: %w", err)
	}
	return record, nil
}

// ListTasksByProject lists one project's task rows oldest-first.
func (s *Store) ListTasksByProject(ctx context.Context, projectID string) ([]storage.TaskRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, fmt.Errorf("project id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, project_id, name, description, status, assigned_to, progress, created_at
FROM tasks
WHERE project_id = ?
ORDER BY created_at ASC, id ASC
`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var results []storage.TaskRecord
	for rows.Next() {
		record, scanErr := scanTask(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("scan task row: %w", scanErr)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task rows: %w", err)
	}
	return results, nil
}

// ListTaskProgressByProject reads the progress column for every task of one
// project. Entries are nil for tasks with no progress set.
func (s *Store) ListTaskProgressByProject(ctx context.Context, projectID string) ([]*int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, fmt.Errorf("project id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT progress FROM tasks WHERE project_id = ?
`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list task progress: %w", err)
	}
	defer rows.Close()

	var results []*int
	for rows.Next() {
		var progress sql.NullInt64
		if err := rows.Scan(&progress); err != nil {
			return nil, fmt.Errorf("scan task progress row: %w", err)
		}
		if progress.Valid {
			value := int(progress.Int64)
			results = append(results, &value)
		} else {
			results = append(results, nil)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task progress rows: %w", err)
	}
	return results, nil
}

// SetTaskAssignee sets or clears the assignee of one task row.
func (s *Store) SetTaskAssignee(ctx context.Context, taskID string, assignee *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return fmt.Errorf("task id is required")
	}

	var value sql.NullString
	if assignee != nil {
		trimmed := strings.TrimSpace(*assignee)
		if trimmed == "" {
			return fmt.Errorf("assignee is required")
		}
		value = sql.NullString{String: trimmed, Valid: true}
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE tasks SET assigned_to = ? WHERE id = ?
`, value, taskID)
	if err != nil {
		return fmt.Errorf("set task assignee: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set task assignee rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteTask removes one task row.
func (s *Store) DeleteTask(ctx context.Context, taskID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return fmt.Errorf("task id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// PutUser upserts one user row. A duplicate username surfaces as storage.ErrConflict.
func (s *Store) PutUser(ctx context.Context, record storage.UserRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeUserRecord(record)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
	INSERT INTO users (id, username, email, password_hash, role, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		username = excluded.username,
		email = excluded.email,
		password_hash = excluded.password_hash,
		role = excluded.role
	`,
		normalized.ID,
		normalized.Username,
		normalized.Email,
		normalized.PasswordHash,
		normalized.Role,
		toMillis(normalized.CreatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// GetUser loads one user row by ID.
func (s *Store) GetUser(ctx context.Context, userID string) (storage.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.UserRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.UserRecord{}, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.UserRecord{}, fmt.Errorf("user id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, username, email, password_hash, role, created_at
FROM users
WHERE id = ?
`, userID)
	record, err := scanUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.UserRecord{}, storage.ErrNotFound
		}
		return storage.UserRecord{}, fmt.Errorf("get user: %w", err)
	}
	return record, nil
}

// GetUserByUsername loads one user row by unique username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (storage.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.UserRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.UserRecord{}, fmt.Errorf("storage is not configured")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return storage.UserRecord{}, fmt.Errorf("username is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, username, email, password_hash, role, created_at
FROM users
WHERE username = ?
`, username)
	record, err := scanUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.UserRecord{}, storage.ErrNotFound
		}
		return storage.UserRecord{}, fmt.Errorf("get user by username: %w", err)
	}
	return record, nil
}

// ListUsers lists all user rows oldest-first.
func (s *Store) ListUsers(ctx context.Context) ([]storage.UserRecord, error) {
	return s.listUsersWhere(ctx, "", "")
}

// ListUsersByRole lists user rows with one role, oldest-first.
func (s *Store) ListUsersByRole(ctx context.Context, role string) ([]storage.UserRecord, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, fmt.Errorf("role is required")
	}
	return s.listUsersWhere(ctx, "WHERE role = ?", role)
}

func (s *Store) listUsersWhere(ctx context.Context, where string, role string) ([]storage.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := `
SELECT id, username, email, password_hash, role, created_at
FROM users
` + where + `
ORDER BY created_at ASC, id ASC
`
	var rows *sql.Rows
	var err error
	if where == "" {
		rows, err = s.sqlDB.QueryContext(ctx, query)
	} else {
		rows, err = s.sqlDB.QueryContext(ctx, query, role)
	}
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var results []storage.UserRecord
	for rows.Next() {
		record, scanErr := scanUser(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("scan user row: %w", scanErr)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return results, nil
}

// UpdateUserRole overwrites only the role column of one user row.
func (s *Store) UpdateUserRole(ctx context.Context, userID string, role string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	role = strings.TrimSpace(role)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if role == "" {
		return fmt.Errorf("role is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE users SET role = ? WHERE id = ?
`, role, userID)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user role rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UpdateUserProfile overwrites the username and email of one user row.
func (s *Store) UpdateUserProfile(ctx context.Context, userID string, username string, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if email == "" {
		return fmt.Errorf("email is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE users SET username = ?, email = ? WHERE id = ?
`, username, email, userID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("update user profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user profile rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteUser removes one user row.
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type scanner func(dest ...any) error

func normalizeProjectRecord(record storage.ProjectRecord) (storage.ProjectRecord, error) {
	record.ID = strings.TrimSpace(record.ID)
	record.Name = strings.TrimSpace(record.Name)
	record.Description = strings.TrimSpace(record.Description)
	record.Status = strings.TrimSpace(record.Status)
	if record.ID == "" {
		return storage.ProjectRecord{}, fmt.Errorf("project id is required")
	}
	if record.Name == "" {
		return storage.ProjectRecord{}, fmt.Errorf("project name is required")
	}
	if record.Status == "" {
		return storage.ProjectRecord{}, fmt.Errorf("project status is required")
	}
	if record.CreatedAt.IsZero() {
		return storage.ProjectRecord{}, fmt.Errorf("created_at is required")
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return record, nil
}

func normalizeTaskRecord(record storage.TaskRecord) (storage.TaskRecord, error) {
	record.ID = strings.TrimSpace(record.ID)
	record.ProjectID = strings.TrimSpace(record.ProjectID)
	record.Name = strings.TrimSpace(record.Name)
	record.Description = strings.TrimSpace(record.Description)
	record.Status = strings.TrimSpace(record.Status)
	if record.ID == "" {
		return storage.TaskRecord{}, fmt.Errorf("task id is required")
	}
	if record.ProjectID == "" {
		return storage.TaskRecord{}, fmt.Errorf("project id is required")
	}
	if record.Name == "" {
		return storage.TaskRecord{}, fmt.Errorf("task name is required")
	}
	if record.CreatedAt.IsZero() {
		return storage.TaskRecord{}, fmt.Errorf("created_at is required")
	}
	if record.AssignedTo != nil {
		assignee := strings.TrimSpace(*record.AssignedTo)
		if assignee == "" {
			record.AssignedTo = nil
		} else {
			record.AssignedTo = &assignee
		}
	}
	if record.Progress != nil && (*record.Progress < 0 || *record.Progress > 100) {
		return storage.TaskRecord{}, fmt.Errorf("task progress must be between 0 and 100")
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return record, nil
}

func normalizeUserRecord(record storage.UserRecord) (storage.UserRecord, error) {
	record.ID = strings.TrimSpace(record.ID)
	record.Username = strings.TrimSpace(record.Username)
	record.Email = strings.TrimSpace(record.Email)
	record.Role = strings.TrimSpace(record.Role)
	if record.ID == "" {
		return storage.UserRecord{}, fmt.Errorf("user id is required")
	}
	if record.Username == "" {
		return storage.UserRecord{}, fmt.Errorf("username is required")
	}
	if record.PasswordHash == "" {
		return storage.UserRecord{}, fmt.Errorf("password hash is required")
	}
	if record.Role == "" {
		return storage.UserRecord{}, fmt.Errorf("role is required")
	}
	if record.CreatedAt.IsZero() {
		return storage.UserRecord{}, fmt.Errorf("created_at is required")
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return record, nil
}

func scanProject(scan scanner) (storage.ProjectRecord, error) {
	var record storage.ProjectRecord
	var createdAt int64
	if err := scan(
		&record.ID,
		&record.Name,
		&record.Description,
		&record.Status,
		&createdAt,
	); err != nil {
		return storage.ProjectRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

func scanTask(scan scanner) (storage.TaskRecord, error) {
	var record storage.TaskRecord
	var assignedTo sql.NullString
	var progress sql.NullInt64
	var createdAt int64
	if err := scan(
		&record.ID,
		&record.ProjectID,
		&record.Name,
		&record.Description,
		&record.Status,
		&assignedTo,
		&progress,
		&createdAt,
	); err != nil {
		return storage.TaskRecord{}, err
	}
	if assignedTo.Valid {
		record.AssignedTo = &assignedTo.String
	}
	if progress.Valid {
		value := int(progress.Int64)
		record.Progress = &value
	}
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

func scanUser(scan scanner) (storage.UserRecord, error) {
	var record storage.UserRecord
	var createdAt int64
	if err := scan(
		&record.ID,
		&record.Username,
		&record.Email,
		&record.PasswordHash,
		&record.Role,
		&createdAt,
	); err != nil {
		return storage.UserRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "unique constraint failed")
}

func isForeignKeyConstraintError(err error) bool {
	if err == nil {
		return false
	}
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "foreign key constraint failed")
}
