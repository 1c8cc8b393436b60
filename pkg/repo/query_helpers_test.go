package repo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yoku/guildmaster/pkg/repo"
)

func TestJoin(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "SELECT 1 FROM t WHERE x = $1", repo.Join("SELECT 1", "FROM t", "", "WHERE x = $1"))
	assert.Equal(t, "", repo.Join("", "  "))
}

func TestJoinWhere(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", repo.JoinWhere())
	assert.Equal(t, "WHERE a = $1 AND b = $2", repo.JoinWhere("a = $1", "b = $2"))
}

func TestInsert(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"INSERT INTO users (id, name) VALUES ($1, $2)",
		repo.Insert("users", []string{"id", "name"}),
	)
	assert.Equal(t,
		"INSERT INTO users (id) VALUES ($1) RETURNING id, created_at",
		repo.Insert("users", []string{"id"}, "id", "created_at"),
	)
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"UPDATE users SET name = $1, email = $2 WHERE id = $3",
		repo.Update("users", []string{"name", "email"}, "WHERE id = $3"),
	)
	assert.Equal(t, "UPDATE users SET name = $1", repo.Update("users", []string{"name"}, ""))
}

func TestFormatLimitOffset(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", repo.FormatLimitOffset(0, 0))
	assert.Equal(t, "LIMIT 10", repo.FormatLimitOffset(10, 0))
	assert.Equal(t, "OFFSET 5", repo.FormatLimitOffset(0, 5))
	assert.Equal(t, "LIMIT 10 OFFSET 5", repo.FormatLimitOffset(10, 5))
}

func TestExists(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "SELECT EXISTS (SELECT 1 FROM t)", repo.Exists("SELECT 1 FROM t"))
}
