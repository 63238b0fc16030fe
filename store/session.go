/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package store

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/flamego/session"
	"github.com/jackc/pgx/v5"
)

// DefaultSessionTable is the table created by the embedded migrations.
const DefaultSessionTable = "labdash_sessions"

// PostgresSessionConfig configures the PostgreSQL session store.
type PostgresSessionConfig struct {
	// Lifetime is how long an untouched session survives. Default is 7 days.
	Lifetime time.Duration
	// TableName defaults to DefaultSessionTable.
	TableName string
	// Encoder defaults to session.GobEncoder.
	Encoder session.Encoder
	// Decoder defaults to session.GobDecoder.
	Decoder session.Decoder
}

// sessionTable is the table of the most recently initialized store.
var sessionTable atomic.Value

// PostgresSessionStore implements session.Store on the shared pool.
type PostgresSessionStore struct {
	config  PostgresSessionConfig
	encoder session.Encoder
	decoder session.Decoder
}

// PostgresSessionIniter returns the Initer for the PostgreSQL session store.
func PostgresSessionIniter() session.Initer {
	return func(_ context.Context, args ...interface{}) (session.Store, error) {
		var config PostgresSessionConfig
		if len(args) > 0 {
			var ok bool
			config, ok = args[0].(PostgresSessionConfig)
			if !ok {
				return nil, errInvalidSessionConfig
			}
		}

		if config.Lifetime == 0 {
			config.Lifetime = 7 * 24 * time.Hour
		}
		if config.TableName == "" {
			config.TableName = DefaultSessionTable
		}
		if config.Encoder == nil {
			config.Encoder = session.GobEncoder
		}
		if config.Decoder == nil {
			config.Decoder = session.GobDecoder
		}

		sessionTable.Store(config.TableName)

		return &PostgresSessionStore{
			config:  config,
			encoder: config.Encoder,
			decoder: config.Decoder,
		}, nil
	}
}

// Exist reports whether an unexpired session with sid exists.
func (s *PostgresSessionStore) Exist(ctx context.Context, sid string) bool {
	if pool == nil {
		return false
	}

	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+s.table()+` WHERE id = $1 AND expires_at > NOW())`,
		sid,
	).Scan(&exists)

	return err == nil && exists
}

// Read returns the session with sid, or a fresh session under that ID.
func (s *PostgresSessionStore) Read(ctx context.Context, sid string) (session.Session, error) {
	if pool == nil {
		return nil, ErrDatabaseNotInitialized
	}

	var data []byte
	err := pool.QueryRow(ctx,
		`SELECT data FROM `+s.table()+` WHERE id = $1 AND expires_at > NOW()`,
		sid,
	).Scan(&data)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// The session middleware writes the cookie itself.
	idWriter := func(http.ResponseWriter, *http.Request, string) {}

	if len(data) == 0 {
		return session.NewBaseSession(sid, s.encoder, idWriter), nil
	}

	decoded, err := s.decoder(data)
	if err != nil {
		logger.Warn("Discarding undecodable session", "error", err)
		return session.NewBaseSession(sid, s.encoder, idWriter), nil
	}

	return session.NewBaseSessionWithData(sid, s.encoder, idWriter, decoded), nil
}

// Destroy deletes the session with sid.
func (s *PostgresSessionStore) Destroy(ctx context.Context, sid string) error {
	if pool == nil {
		return ErrDatabaseNotInitialized
	}

	_, err := pool.Exec(ctx, `DELETE FROM `+s.table()+` WHERE id = $1`, sid)

	return err
}

// Touch extends the expiry of the session with sid.
func (s *PostgresSessionStore) Touch(ctx context.Context, sid string) error {
	if pool == nil {
		return ErrDatabaseNotInitialized
	}

	_, err := pool.Exec(ctx,
		`UPDATE `+s.table()+` SET expires_at = $1 WHERE id = $2`,
		time.Now().Add(s.config.Lifetime), sid,
	)

	return err
}

// Save upserts the session data.
func (s *PostgresSessionStore) Save(ctx context.Context, sess session.Session) error {
	if pool == nil {
		return ErrDatabaseNotInitialized
	}

	data, err := sess.Encode()
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO `+s.table()+` (id, data, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			data = EXCLUDED.data,
			expires_at = EXCLUDED.expires_at`,
		sess.ID(), data, time.Now().Add(s.config.Lifetime),
	)

	return err
}

// GC removes expired sessions.
func (s *PostgresSessionStore) GC(ctx context.Context) error {
	if pool == nil {
		return ErrDatabaseNotInitialized
	}

	_, err := pool.Exec(ctx, `DELETE FROM `+s.table()+` WHERE expires_at < NOW()`)

	return err
}

// CountActive returns the number of unexpired sessions in the store.
func (s *PostgresSessionStore) CountActive(ctx context.Context) (int, error) {
	return countActiveSessions(ctx, s.config.TableName)
}

// CountActiveSessions counts unexpired sessions in the table of the
// initialized session store, or DefaultSessionTable when none was set up.
func CountActiveSessions(ctx context.Context) (int, error) {
	table, _ := sessionTable.Load().(string)
	if table == "" {
		table = DefaultSessionTable
	}

	return countActiveSessions(ctx, table)
}

func countActiveSessions(ctx context.Context, table string) (int, error) {
	if pool == nil {
		return 0, ErrDatabaseNotInitialized
	}

	var n int
	err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM `+pgx.Identifier{table}.Sanitize()+` WHERE expires_at > NOW()`,
	).Scan(&n)

	return n, err
}

func (s *PostgresSessionStore) table() string {
	return pgx.Identifier{s.config.TableName}.Sanitize()
}
