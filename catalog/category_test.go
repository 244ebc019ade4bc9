package catalog_test

import (
	"testing"
	"time"

	"elearn/catalog"
	"elearn/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noCache bypasses memoization so every call reads the table.
func noCache() *catalog.CategoryCache {
	return catalog.NewCategoryCache(0)
}

func TestResolveCategoryClosure(t *testing.T) {
	db := setupTestDB(t)

	root := createCategory(t, db, "Development", nil)
	web := createCategory(t, db, "Web", &root.ID)
	mobile := createCategory(t, db, "Mobile", &root.ID)
	react := createCategory(t, db, "React", &web.ID)
	design := createCategory(t, db, "Design", nil)

	ids, err := catalog.ResolveCategory(db, noCache(), root.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{root.ID, web.ID, mobile.ID, react.ID}, ids)
	assert.NotContains(t, ids, design.ID)

	// a mid-level node only pulls its own subtree
	ids, err = catalog.ResolveCategory(db, noCache(), web.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{web.ID, react.ID}, ids)

	// a leaf resolves to itself
	ids, err = catalog.ResolveCategory(db, noCache(), react.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{react.ID}, ids)
}

func TestResolveCategoryNotFound(t *testing.T) {
	db := setupTestDB(t)
	createCategory(t, db, "Development", nil)

	_, err := catalog.ResolveCategory(db, noCache(), 9999)
	assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)
}

func TestResolveCategoryCycle(t *testing.T) {
	db := setupTestDB(t)

	a := createCategory(t, db, "A", nil)
	b := createCategory(t, db, "B", &a.ID)

	// corrupt the hierarchy behind the model layer's back
	require.NoError(t, db.Table("categories").Where("id = ?", a.ID).
		UpdateColumn("parent_id", b.ID).Error)

	_, err := catalog.ResolveCategory(db, noCache(), a.ID)
	assert.ErrorIs(t, err, catalog.ErrCategoryCycle)
}

func TestCategoryCacheServesStaleUntilInvalidated(t *testing.T) {
	db := setupTestDB(t)
	cache := catalog.NewCategoryCache(time.Hour)

	root := createCategory(t, db, "Development", nil)

	ids, err := catalog.ResolveCategory(db, cache, root.ID)
	require.NoError(t, err)
	require.Len(t, ids, 1)

	// rows added after the load stay invisible inside the window
	createCategory(t, db, "Web", &root.ID)
	ids, err = catalog.ResolveCategory(db, cache, root.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	cache.Invalidate()
	ids, err = catalog.ResolveCategory(db, cache, root.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestCategoryCacheNilSafe(t *testing.T) {
	db := setupTestDB(t)
	root := createCategory(t, db, "Development", nil)

	var cache *catalog.CategoryCache
	cache.Invalidate() // must not panic

	ids, err := catalog.ResolveCategory(db, cache, root.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{root.ID}, ids)
}

func TestCategoryTree(t *testing.T) {
	db := setupTestDB(t)

	dev := createCategory(t, db, "Development", nil)
	biz := createCategory(t, db, "Business", nil)
	web := createCategory(t, db, "Web", &dev.ID)
	api := createCategory(t, db, "APIs", &dev.ID)

	tree, err := catalog.CategoryTree(db, noCache())
	require.NoError(t, err)
	require.Len(t, tree, 2)

	// roots and children come back in name order
	assert.Equal(t, biz.ID, tree[0].ID)
	assert.Equal(t, dev.ID, tree[1].ID)
	require.Len(t, tree[1].Children, 2)
	assert.Equal(t, api.ID, tree[1].Children[0].ID)
	assert.Equal(t, web.ID, tree[1].Children[1].ID)
}

func TestCategoryTreeExcludesDeleted(t *testing.T) {
	db := setupTestDB(t)

	dev := createCategory(t, db, "Development", nil)
	gone := createCategory(t, db, "Obsolete", nil)
	require.NoError(t, db.Delete(&models.Category{}, gone.ID).Error)

	tree, err := catalog.CategoryTree(db, noCache())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, dev.ID, tree[0].ID)
}
