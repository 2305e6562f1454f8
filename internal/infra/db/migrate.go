package db

import (
	"database/sql"
)

// MigrateUp creates the schema if it does not exist.
// Statements are idempotent so the migration can run on every startup.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id           SERIAL PRIMARY KEY,
    slug         TEXT NOT NULL UNIQUE,
    title        TEXT NOT NULL,
    excerpt      TEXT,
    content      TEXT NOT NULL,
    category     TEXT,
    published_at TIMESTAMPTZ,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS medium_articles (
    id           SERIAL PRIMARY KEY,
    medium_id    TEXT NOT NULL UNIQUE,
    title        TEXT NOT NULL,
    link         TEXT NOT NULL,
    excerpt      TEXT,
    category     TEXT,
    published_at TIMESTAMPTZ NOT NULL,
    synced_at    TIMESTAMPTZ NOT NULL
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS resumes (
    id           SERIAL PRIMARY KEY,
    display_name TEXT NOT NULL,
    stored_key   TEXT NOT NULL UNIQUE,
    mime_type    TEXT,
    uploaded_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS templates (
    id             SERIAL PRIMARY KEY,
    slug           TEXT NOT NULL UNIQUE,
    display_name   TEXT NOT NULL,
    stored_key     TEXT NOT NULL UNIQUE,
    mime_type      TEXT,
    uploaded_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    view_count     INTEGER NOT NULL DEFAULT 0,
    download_count INTEGER NOT NULL DEFAULT 0,
    share_count    INTEGER NOT NULL DEFAULT 0
)`); err != nil {
		return err
	}

	// ORDER BYで使用するカラムにインデックス追加
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_posts_published_at ON posts(published_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_medium_articles_published_at ON medium_articles(published_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_resumes_uploaded_at ON resumes(uploaded_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_templates_uploaded_at ON templates(uploaded_at DESC)`,
	}

	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}
