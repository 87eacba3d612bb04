package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryRepository_AppendAndReadAll(t *testing.T) {
	repo := NewHistoryRepository(t.TempDir())

	repo.Append(1001, "Deposited: Rs. 100.00 | Balance: Rs. 5100.00")
	repo.Append(1001, "Withdrew: Rs. 50.00 | Balance: Rs. 5050.00")
	repo.Append(1001, "Action: PIN changed.")

	lines, err := repo.ReadAll(1001)
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"Deposited: Rs. 100.00 | Balance: Rs. 5100.00",
		"Withdrew: Rs. 50.00 | Balance: Rs. 5050.00",
		"Action: PIN changed.",
	}, lines)
}

func TestHistoryRepository_ReadAllNoFile(t *testing.T) {
	repo := NewHistoryRepository(t.TempDir())

	lines, err := repo.ReadAll(1001)
	assert.Nil(t, lines)
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestHistoryRepository_FilesAreScopedPerAccount(t *testing.T) {
	repo := NewHistoryRepository(t.TempDir())

	repo.Append(1001, "Deposited: Rs. 10.00 | Balance: Rs. 10.00")
	repo.Append(1002, "Deposited: Rs. 20.00 | Balance: Rs. 20.00")

	lines, err := repo.ReadAll(1001)
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "10.00")

	lines, err = repo.ReadAll(1002)
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "20.00")
}
