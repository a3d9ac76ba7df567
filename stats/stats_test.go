package stats_test

import (
	"path/filepath"
	"testing"

	dbpkg "corpora/db"
	"corpora/models"
	"corpora/stats"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	dbpkg.Migrate(db)
	return db
}

func seedTag(t *testing.T, db *gorm.DB, datasetID int64, name string, active bool) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, DatasetID: datasetID, IsActive: &active}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

func TestCountTextsByTagOrdering(t *testing.T) {
	db := openTestDB(t)
	dataset := models.Dataset{Name: "ds1"}
	require.NoError(t, db.Create(&dataset).Error)

	zebra := seedTag(t, db, dataset.ID, "zebra", true)
	alfa := seedTag(t, db, dataset.ID, "alfa", true)
	morto := seedTag(t, db, dataset.ID, "morto", false)

	require.NoError(t, db.Create(&models.Text{
		Content: "um", DatasetID: dataset.ID, Tags: []models.Tag{zebra, alfa, morto},
	}).Error)
	require.NoError(t, db.Create(&models.Text{
		Content: "dois", DatasetID: dataset.ID, Tags: []models.Tag{zebra},
	}).Error)

	counts, names, err := stats.CountTextsByTag(db, dataset.ID)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"alfa": 1, "zebra": 2}, counts)
	assert.Equal(t, []string{"alfa", "zebra"}, names)
}

func TestCountTextsByTagEmptyDataset(t *testing.T) {
	db := openTestDB(t)
	dataset := models.Dataset{Name: "ds1"}
	require.NoError(t, db.Create(&dataset).Error)

	counts, names, err := stats.CountTextsByTag(db, dataset.ID)
	require.NoError(t, err)
	assert.Empty(t, counts)
	assert.Empty(t, names)
}

func TestSearchTextsInsertionOrder(t *testing.T) {
	db := openTestDB(t)
	dataset := models.Dataset{Name: "ds1"}
	require.NoError(t, db.Create(&dataset).Error)

	require.NoError(t, db.Create(&models.Text{Content: "Hello World", DatasetID: dataset.ID}).Error)
	require.NoError(t, db.Create(&models.Text{Content: "diz hello de novo", DatasetID: dataset.ID}).Error)
	require.NoError(t, db.Create(&models.Text{Content: "nada a ver", DatasetID: dataset.ID}).Error)

	texts, err := stats.SearchTexts(db, dataset.ID, "HELLO")
	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, "Hello World", texts[0].Content)
	assert.Equal(t, "diz hello de novo", texts[1].Content)
}

func TestSearchTextsNoMatch(t *testing.T) {
	db := openTestDB(t)
	dataset := models.Dataset{Name: "ds1"}
	require.NoError(t, db.Create(&dataset).Error)
	require.NoError(t, db.Create(&models.Text{Content: "hello", DatasetID: dataset.ID}).Error)

	texts, err := stats.SearchTexts(db, dataset.ID, "xyz")
	require.NoError(t, err)
	assert.Empty(t, texts)
}
