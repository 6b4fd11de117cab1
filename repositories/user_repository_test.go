package repositories

import (
	"errors"
	"testing"

	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/apperr"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateDuplicateEmail(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	seedUser(t, db, "a@x.edu", "X")

	err := repo.Create(&models.User{
		Name:         "Dup",
		Email:        "a@x.edu",
		PasswordHash: "x",
		Phone:        "1",
		College:      "X",
		Branch:       "ECE",
		Semester:     "3",
	})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestUserLookups(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	seeded := seedUser(t, db, "a@x.edu", "X")

	byEmail, err := repo.GetByEmail("a@x.edu")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, byEmail.ID)

	byID, err := repo.GetByID(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.edu", byID.Email)

	_, err = repo.GetByEmail("missing@x.edu")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
