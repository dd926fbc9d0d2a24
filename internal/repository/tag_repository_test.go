package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/testutil"
	"gorm.io/gorm"
)

func TestTagRepository_ResolveIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTagRepository(db)

	first, err := repo.Resolve([]string{"a", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tagNames(first))

	second, err := repo.Resolve([]string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, tagNames(second))
	assert.Equal(t, first[0].ID, second[1].ID)
	assert.Equal(t, first[1].ID, second[0].ID)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestTagRepository_ResolveIsCaseSensitive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTagRepository(db)

	tags, err := repo.Resolve([]string{"Go", "go"})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.NotEqual(t, tags[0].ID, tags[1].ID)
}

func TestTagRepository_ResolveEmpty(t *testing.T) {
	db := testutil.NewDB(t)

	tags, err := NewTagRepository(db).Resolve(nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagRepository_FindByName(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTagRepository(db)

	_, err := repo.Resolve([]string{"sql"})
	require.NoError(t, err)

	tag, err := repo.FindByName("sql")
	require.NoError(t, err)
	assert.Equal(t, "sql", tag.Name)

	_, err = repo.FindByName("SQL")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
