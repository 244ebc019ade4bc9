package catalog_test

import (
	"testing"
	"time"

	"elearn/catalog"
	course "elearn/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRatedBeatsUnrated(t *testing.T) {
	db := setupTestDB(t)

	unrated := createCourse(t, db, course.Course{Title: "Go Basics"})
	poorlyRated := createCourse(t, db, course.Course{Title: "Go Advanced"})
	review(t, db, 1, poorlyRated.ID, 1)

	res, err := catalog.Search(db, catalog.Query{Sort: catalog.SortTopRated})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	// even a 1-star course outranks one nobody reviewed
	assert.Equal(t, poorlyRated.ID, res.Rows[0].ID)
	assert.Equal(t, unrated.ID, res.Rows[1].ID)
	assert.Nil(t, res.Rows[1].Rating)
}

func TestSearchTopRatedCascade(t *testing.T) {
	db := setupTestDB(t)

	// same 4.0 average; more reviews wins
	few := createCourse(t, db, course.Course{Title: "Few Reviews"})
	review(t, db, 1, few.ID, 4)

	many := createCourse(t, db, course.Course{Title: "Many Reviews"})
	review(t, db, 1, many.ID, 4)
	review(t, db, 2, many.ID, 4)

	res, err := catalog.Search(db, catalog.Query{Sort: catalog.SortTopRated})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, many.ID, res.Rows[0].ID)
	require.NotNil(t, res.Rows[0].Rating)
	assert.Equal(t, 4.0, *res.Rows[0].Rating)
}

func TestSearchTieBreakDeterministic(t *testing.T) {
	db := setupTestDB(t)

	stamp := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		createCourse(t, db, course.Course{Title: "Identical Course", LastUpdated: stamp})
	}

	first, err := catalog.Search(db, catalog.Query{Sort: catalog.SortTopRated})
	require.NoError(t, err)
	require.Len(t, first.Rows, 5)

	// fully tied rows fall back to id descending
	ids := resultIDs(first.Rows)
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i-1], ids[i])
	}

	for i := 0; i < 3; i++ {
		again, err := catalog.Search(db, catalog.Query{Sort: catalog.SortTopRated})
		require.NoError(t, err)
		assert.Equal(t, ids, resultIDs(again.Rows))
	}
}

func TestSearchPriceAscendingUsesEffectivePrice(t *testing.T) {
	db := setupTestDB(t)

	promo := 40.0
	discounted := createCourse(t, db, course.Course{Title: "Discounted", Price: 100, PromotionalPrice: &promo})
	plain := createCourse(t, db, course.Course{Title: "Plain", Price: 50})

	res, err := catalog.Search(db, catalog.Query{Sort: catalog.SortPriceAsc})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	// 100 with a 40 promo sorts before a flat 50
	assert.Equal(t, discounted.ID, res.Rows[0].ID)
	assert.Equal(t, plain.ID, res.Rows[1].ID)
}

func TestSearchPaginationConsistency(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 7; i++ {
		createCourse(t, db, course.Course{Title: "Course"})
	}

	seen := map[uint]bool{}
	fetched := 0
	for page := 1; page <= 4; page++ {
		res, err := catalog.Search(db, catalog.Query{Sort: catalog.SortTopRated, Page: page, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, 7, res.Total)
		for _, id := range resultIDs(res.Rows) {
			assert.False(t, seen[id], "course %d served twice", id)
			seen[id] = true
		}
		fetched += len(res.Rows)
	}
	assert.Equal(t, 7, fetched)

	// a page past the end is empty, not an error
	res, err := catalog.Search(db, catalog.Query{Sort: catalog.SortTopRated, Page: 50, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.Equal(t, 7, res.Total)
}

func TestSearchEmptyResultIsNotError(t *testing.T) {
	db := setupTestDB(t)
	createCourse(t, db, course.Course{Title: "Go Basics"})

	res, err := catalog.Search(db, catalog.Query{Text: "underwater bagpipe repair"})
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.Equal(t, 0, res.Total)
}

func TestSearchOnlyPublishedVisible(t *testing.T) {
	db := setupTestDB(t)

	visible := createCourse(t, db, course.Course{Title: "Published Course"})
	createCourse(t, db, course.Course{Title: "Completed Course", Status: catalog.StatusCompleted})
	createCourse(t, db, course.Course{Title: "Draft Course", Status: catalog.StatusDraft})

	res, err := catalog.Search(db, catalog.Query{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, visible.ID, res.Rows[0].ID)
	assert.Equal(t, 1, res.Total)
}

func TestSearchAccentInsensitive(t *testing.T) {
	db := setupTestDB(t)

	viet := createCourse(t, db, course.Course{Title: "Lập Trình Web"})
	createCourse(t, db, course.Course{Title: "Cooking for Beginners"})

	// unaccented query finds the accented title
	res, err := catalog.Search(db, catalog.Query{Text: "lap trinh"})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, viet.ID, res.Rows[0].ID)

	// and the accented query finds it too
	res, err = catalog.Search(db, catalog.Query{Text: "LẬP TRÌNH"})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, viet.ID, res.Rows[0].ID)
}

func TestSearchRelevanceOrdering(t *testing.T) {
	db := setupTestDB(t)

	// phrase hit should outrank a scattered keyword match even when the
	// scattered match is better rated
	phrase := createCourse(t, db, course.Course{Title: "Web Go Mastery"})
	scattered := createCourse(t, db, course.Course{Title: "Go for the Web"})
	review(t, db, 1, scattered.ID, 5)

	res, err := catalog.Search(db, catalog.Query{Text: "web go", Sort: catalog.SortRelevance})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, phrase.ID, res.Rows[0].ID)
	assert.Equal(t, scattered.ID, res.Rows[1].ID)
}

func TestSearchCategorySubtree(t *testing.T) {
	db := setupTestDB(t)

	dev := createCategory(t, db, "Development", nil)
	web := createCategory(t, db, "Web", &dev.ID)
	biz := createCategory(t, db, "Business", nil)

	inRoot := createCourse(t, db, course.Course{Title: "General Dev", CategoryID: &dev.ID})
	inChild := createCourse(t, db, course.Course{Title: "Web Dev", CategoryID: &web.ID})
	createCourse(t, db, course.Course{Title: "Accounting", CategoryID: &biz.ID})

	ids, err := catalog.ResolveCategory(db, noCache(), dev.ID)
	require.NoError(t, err)

	res, err := catalog.Search(db, catalog.Query{CategoryIDs: ids})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{inRoot.ID, inChild.ID}, resultIDs(res.Rows))
}

func TestSearchBestSellerOrdersByStudents(t *testing.T) {
	db := setupTestDB(t)

	quiet := createCourse(t, db, course.Course{Title: "Quiet Course"})
	popular := createCourse(t, db, course.Course{Title: "Popular Course"})
	for u := uint(1); u <= 3; u++ {
		enroll(t, db, u, popular.ID)
	}
	enroll(t, db, 1, quiet.ID)

	res, err := catalog.Search(db, catalog.Query{Sort: catalog.SortBestSeller})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, popular.ID, res.Rows[0].ID)
	assert.Equal(t, int64(3), res.Rows[0].Students)
}

func TestSearchRatingAverage(t *testing.T) {
	db := setupTestDB(t)

	crs := createCourse(t, db, course.Course{Title: "Averaged"})
	review(t, db, 1, crs.ID, 5)
	review(t, db, 2, crs.ID, 4)

	res, err := catalog.Search(db, catalog.Query{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	require.NotNil(t, res.Rows[0].Rating)
	assert.Equal(t, 4.5, *res.Rows[0].Rating)
	assert.Equal(t, int64(2), res.Rows[0].RatingCount)
}

func TestCourseDetail(t *testing.T) {
	db := setupTestDB(t)

	crs := createCourse(t, db, course.Course{Title: "Detail Course", Status: catalog.StatusDraft})

	sum, err := catalog.CourseDetail(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, crs.ID, sum.ID)
	assert.Equal(t, catalog.StatusDraft, sum.Status)

	_, err = catalog.CourseDetail(db, 9999)
	assert.ErrorIs(t, err, catalog.ErrCourseNotFound)
}

func TestIncrementViews(t *testing.T) {
	db := setupTestDB(t)

	crs := createCourse(t, db, course.Course{Title: "Viewed"})
	require.NoError(t, catalog.IncrementViews(db, crs.ID))
	require.NoError(t, catalog.IncrementViews(db, crs.ID))

	sum, err := catalog.CourseDetail(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.Views)
}

func TestRelatedBestSellers(t *testing.T) {
	db := setupTestDB(t)

	cat := createCategory(t, db, "Development", nil)
	other := createCategory(t, db, "Business", nil)

	anchor := createCourse(t, db, course.Course{Title: "Anchor", CategoryID: &cat.ID})
	sibling := createCourse(t, db, course.Course{Title: "Sibling", CategoryID: &cat.ID})
	createCourse(t, db, course.Course{Title: "Elsewhere", CategoryID: &other.ID})

	rows, err := catalog.RelatedBestSellers(db, cat.ID, anchor.ID, 4)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, sibling.ID, rows[0].ID)
}
