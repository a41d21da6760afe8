package database

import (
	"context"
	"database/sql"
)

// schema holds the CREATE TABLE statements for the catalog.  Association
// tables carry composite primary keys, which makes re-linking a pair a no-op
// at the storage level, and ON DELETE CASCADE foreign keys, so deleting a
// film/actor/oscar cannot leave dangling association rows.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username    VARCHAR(100)    NOT NULL,
		senha_hash  VARCHAR(100)    NOT NULL,
		eh_admin    BOOLEAN         NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS films (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		movie       VARCHAR(255)    NOT NULL,
		director    VARCHAR(255)    NOT NULL,
		nota        TINYINT         NOT NULL,
		created_at  TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS actors (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name        VARCHAR(255)    NOT NULL,
		birth_year  SMALLINT        NOT NULL,
		created_at  TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS oscars (
		id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		nome_premio      VARCHAR(255)    NOT NULL,
		ano_recebimento  SMALLINT        NOT NULL,
		created_at       TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS film_actors (
		film_id   BIGINT UNSIGNED NOT NULL,
		actor_id  BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (film_id, actor_id),
		CONSTRAINT fk_fa_film  FOREIGN KEY (film_id)  REFERENCES films(id)  ON DELETE CASCADE,
		CONSTRAINT fk_fa_actor FOREIGN KEY (actor_id) REFERENCES actors(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS film_oscars (
		film_id   BIGINT UNSIGNED NOT NULL,
		oscar_id  BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (film_id, oscar_id),
		CONSTRAINT fk_fo_film  FOREIGN KEY (film_id)  REFERENCES films(id)  ON DELETE CASCADE,
		CONSTRAINT fk_fo_oscar FOREIGN KEY (oscar_id) REFERENCES oscars(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS actor_oscars (
		actor_id  BIGINT UNSIGNED NOT NULL,
		oscar_id  BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (actor_id, oscar_id),
		CONSTRAINT fk_ao_actor FOREIGN KEY (actor_id) REFERENCES actors(id) ON DELETE CASCADE,
		CONSTRAINT fk_ao_oscar FOREIGN KEY (oscar_id) REFERENCES oscars(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// EnsureSchema creates the catalog tables when they do not exist yet.  It is
// executed once at startup so a fresh database is usable without any manual
// setup step.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
