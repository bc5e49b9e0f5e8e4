package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/forum-platform/services/forum/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// NewPostgres returns stores backed by one shared pool.
func NewPostgres(pool *pgxpool.Pool) Stores {
	return Stores{
		Users:    &PostgresUserStore{pool: pool},
		Threads:  &PostgresThreadStore{pool: pool},
		Comments: &PostgresCommentStore{pool: pool},
		Replies:  &PostgresReplyStore{pool: pool},
		Likes:    &PostgresLikeStore{pool: pool},
		Audit:    &PostgresAuditStore{pool: pool},
	}
}

// translate maps constraint violations onto the package sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrConflict
		case pgForeignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}

func exists(ctx context.Context, pool *pgxpool.Pool, q string, args ...any) (bool, error) {
	var ok bool
	if err := pool.QueryRow(ctx, "SELECT EXISTS("+q+")", args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func markDeleted(ctx context.Context, pool *pgxpool.Pool, q, id string) error {
	tag, err := pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ─── users ────────────────────────────────────────────────────────────────

type PostgresUserStore struct {
	pool *pgxpool.Pool
}

func (s *PostgresUserStore) Create(ctx context.Context, p CreateUserParams) (domain.User, error) {
	const q = `INSERT INTO users (id, username, password, fullname)
	           VALUES ($1, $2, $3, $4)
	           RETURNING id, username, fullname, created_at`
	var u domain.User
	err := s.pool.QueryRow(ctx, q, NewID("user"), p.Username, p.PasswordHash, p.Fullname).
		Scan(&u.ID, &u.Username, &u.Fullname, &u.CreatedAt)
	if err != nil {
		return domain.User{}, translate(err)
	}
	return u, nil
}

func (s *PostgresUserStore) FindByUsername(ctx context.Context, username string) (UserRow, error) {
	const q = `SELECT id, username, fullname, created_at, password
	           FROM users
	           WHERE lower(username) = lower($1)
	           LIMIT 1`
	var row UserRow
	err := s.pool.QueryRow(ctx, q, username).
		Scan(&row.User.ID, &row.User.Username, &row.User.Fullname, &row.User.CreatedAt, &row.PasswordHash)
	if err != nil {
		return UserRow{}, translate(err)
	}
	return row, nil
}

// ─── threads ──────────────────────────────────────────────────────────────

type PostgresThreadStore struct {
	pool *pgxpool.Pool
}

func (s *PostgresThreadStore) Insert(ctx context.Context, t domain.NewThread) (domain.AddedThread, error) {
	const q = `INSERT INTO threads (id, title, body, owner)
	           VALUES ($1, $2, $3, $4)
	           RETURNING id, title, owner`
	var out domain.AddedThread
	err := s.pool.QueryRow(ctx, q, NewID("thread"), t.Title, t.Body, t.Owner).Scan(&out.ID, &out.Title, &out.Owner)
	if err != nil {
		return domain.AddedThread{}, translate(err)
	}
	return out, nil
}

func (s *PostgresThreadStore) Get(ctx context.Context, threadID string) (domain.Thread, error) {
	const q = `SELECT t.id, t.title, t.body, t.date, COALESCE(u.username, '')
	           FROM threads t
	           LEFT JOIN users u ON t.owner = u.id
	           WHERE t.id = $1`
	var t domain.Thread
	err := s.pool.QueryRow(ctx, q, threadID).Scan(&t.ID, &t.Title, &t.Body, &t.Date, &t.Username)
	if err != nil {
		return domain.Thread{}, translate(err)
	}
	return t, nil
}

func (s *PostgresThreadStore) Exists(ctx context.Context, threadID string) (bool, error) {
	return exists(ctx, s.pool, `SELECT 1 FROM threads WHERE id = $1`, threadID)
}

// ─── comments ─────────────────────────────────────────────────────────────

type PostgresCommentStore struct {
	pool *pgxpool.Pool
}

func (s *PostgresCommentStore) Insert(ctx context.Context, c domain.NewComment) (domain.AddedComment, error) {
	const q = `INSERT INTO comments (id, content, owner, thread_id)
	           VALUES ($1, $2, $3, $4)
	           RETURNING id, content, owner`
	var out domain.AddedComment
	err := s.pool.QueryRow(ctx, q, NewID("comment"), c.Content, c.Owner, c.ThreadID).Scan(&out.ID, &out.Content, &out.Owner)
	if err != nil {
		return domain.AddedComment{}, translate(err)
	}
	return out, nil
}

func (s *PostgresCommentStore) ExistsInThread(ctx context.Context, commentID, threadID string) (bool, error) {
	return exists(ctx, s.pool,
		`SELECT 1 FROM comments WHERE id = $1 AND thread_id = $2 AND is_deleted = FALSE`,
		commentID, threadID)
}

func (s *PostgresCommentStore) IsOwner(ctx context.Context, commentID, userID string) (bool, error) {
	return exists(ctx, s.pool, `SELECT 1 FROM comments WHERE id = $1 AND owner = $2`, commentID, userID)
}

func (s *PostgresCommentStore) MarkDeleted(ctx context.Context, commentID string) error {
	return markDeleted(ctx, s.pool, `UPDATE comments SET is_deleted = TRUE WHERE id = $1`, commentID)
}

func (s *PostgresCommentStore) ListByThread(ctx context.Context, threadID string) ([]domain.Comment, error) {
	const q = `SELECT c.id, c.thread_id, c.owner, COALESCE(u.username, ''), c.content, c.date, c.is_deleted
	           FROM comments c
	           LEFT JOIN users u ON c.owner = u.id
	           WHERE c.thread_id = $1
	           ORDER BY c.date ASC, c.id ASC`
	rows, err := s.pool.Query(ctx, q, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.ThreadID, &c.Owner, &c.Username, &c.Content, &c.Date, &c.Deleted); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ─── replies ──────────────────────────────────────────────────────────────

type PostgresReplyStore struct {
	pool *pgxpool.Pool
}

func (s *PostgresReplyStore) Insert(ctx context.Context, r domain.NewReply) (domain.AddedReply, error) {
	const q = `INSERT INTO replies (id, content, owner, comment_id)
	           VALUES ($1, $2, $3, $4)
	           RETURNING id, content, owner`
	var out domain.AddedReply
	err := s.pool.QueryRow(ctx, q, NewID("reply"), r.Content, r.Owner, r.CommentID).Scan(&out.ID, &out.Content, &out.Owner)
	if err != nil {
		return domain.AddedReply{}, translate(err)
	}
	return out, nil
}

func (s *PostgresReplyStore) ExistsInComment(ctx context.Context, replyID, commentID, threadID string) (bool, error) {
	return exists(ctx, s.pool,
		`SELECT 1 FROM replies r
		 INNER JOIN comments c ON r.comment_id = c.id
		 WHERE r.id = $1 AND r.comment_id = $2 AND c.thread_id = $3
		   AND r.is_deleted = FALSE AND c.is_deleted = FALSE`,
		replyID, commentID, threadID)
}

func (s *PostgresReplyStore) IsOwner(ctx context.Context, replyID, userID string) (bool, error) {
	return exists(ctx, s.pool, `SELECT 1 FROM replies WHERE id = $1 AND owner = $2`, replyID, userID)
}

func (s *PostgresReplyStore) MarkDeleted(ctx context.Context, replyID string) error {
	return markDeleted(ctx, s.pool, `UPDATE replies SET is_deleted = TRUE WHERE id = $1`, replyID)
}

func (s *PostgresReplyStore) ListByThread(ctx context.Context, threadID string) ([]domain.Reply, error) {
	const q = `SELECT r.id, r.comment_id, r.owner, COALESCE(u.username, ''), r.content, r.date, r.is_deleted
	           FROM replies r
	           INNER JOIN comments c ON r.comment_id = c.id
	           LEFT JOIN users u ON r.owner = u.id
	           WHERE c.thread_id = $1
	           ORDER BY r.date ASC, r.id ASC`
	rows, err := s.pool.Query(ctx, q, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Reply{}
	for rows.Next() {
		var r domain.Reply
		if err := rows.Scan(&r.ID, &r.CommentID, &r.Owner, &r.Username, &r.Content, &r.Date, &r.Deleted); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ─── likes ────────────────────────────────────────────────────────────────

type PostgresLikeStore struct {
	pool *pgxpool.Pool
}

func (s *PostgresLikeStore) Exists(ctx context.Context, userID, commentID string) (bool, error) {
	return exists(ctx, s.pool, `SELECT 1 FROM likes_comments WHERE comment_id = $1 AND owner = $2`, commentID, userID)
}

func (s *PostgresLikeStore) Insert(ctx context.Context, userID, commentID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO likes_comments (id, comment_id, owner) VALUES ($1, $2, $3)`,
		NewID("like"), commentID, userID)
	return translate(err)
}

func (s *PostgresLikeStore) Remove(ctx context.Context, userID, commentID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM likes_comments WHERE comment_id = $1 AND owner = $2`, commentID, userID)
	return err
}

func (s *PostgresLikeStore) CountsByThread(ctx context.Context, threadID string) ([]domain.LikeRow, error) {
	const q = `SELECT l.comment_id
	           FROM likes_comments l
	           INNER JOIN comments c ON l.comment_id = c.id
	           WHERE c.thread_id = $1`
	rows, err := s.pool.Query(ctx, q, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.LikeRow{}
	for rows.Next() {
		var l domain.LikeRow
		if err := rows.Scan(&l.CommentID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ─── audit ────────────────────────────────────────────────────────────────

type PostgresAuditStore struct {
	pool *pgxpool.Pool
}

func (s *PostgresAuditStore) Append(ctx context.Context, e AuditEntry) (bool, error) {
	const q = `INSERT INTO forum_audit (event_id, subject, user_id, occurred_at, payload)
	           VALUES ($1, $2, $3, $4, $5)
	           ON CONFLICT (event_id) DO NOTHING`
	tag, err := s.pool.Exec(ctx, q, e.EventID, e.Subject, e.UserID, e.OccurredAt, e.Payload)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
