package catalog

import (
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

// maxCategoryDepth bounds frontier expansion; anything deeper is treated as
// a data-integrity failure rather than a legitimate hierarchy.
const maxCategoryDepth = 64

// CategoryNode is one row of the category table.
type CategoryNode struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ParentID *uint  `json:"parent_id"`
}

// CategoryTreeNode is a top-level category with its children, as rendered by
// the storefront navigation.
type CategoryTreeNode struct {
	CategoryNode
	Children []CategoryNode `json:"children"`
}

// CategoryCache is a process-wide, time-bounded memo of the category table.
// The table is small and read-mostly; a stale window of about a minute is
// acceptable and a miss transparently recomputes. A zero TTL disables
// caching entirely, which tests use to hit the database directly.
type CategoryCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	fetchedAt time.Time
	nodes     []CategoryNode
}

// NewCategoryCache returns a cache with the given staleness window.
func NewCategoryCache(ttl time.Duration) *CategoryCache {
	return &CategoryCache{ttl: ttl}
}

// Invalidate drops the cached rows. Category mutations call this so admin
// edits show up immediately instead of after the TTL.
func (cc *CategoryCache) Invalidate() {
	if cc == nil {
		return
	}
	cc.mu.Lock()
	cc.fetchedAt = time.Time{}
	cc.nodes = nil
	cc.mu.Unlock()
}

func (cc *CategoryCache) load(db *gorm.DB) ([]CategoryNode, error) {
	if cc == nil || cc.ttl <= 0 {
		return fetchCategories(db)
	}

	cc.mu.RLock()
	if !cc.fetchedAt.IsZero() && time.Since(cc.fetchedAt) < cc.ttl {
		nodes := cc.nodes
		cc.mu.RUnlock()
		return nodes, nil
	}
	cc.mu.RUnlock()

	nodes, err := fetchCategories(db)
	if err != nil {
		return nil, err
	}

	cc.mu.Lock()
	cc.nodes = nodes
	cc.fetchedAt = time.Now()
	cc.mu.Unlock()
	return nodes, nil
}

func fetchCategories(db *gorm.DB) ([]CategoryNode, error) {
	var nodes []CategoryNode
	err := db.Table("categories").
		Select("id, name, parent_id").
		Where("deleted_at IS NULL").
		Order("id asc").
		Scan(&nodes).Error
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// ResolveCategory expands a category id into itself plus every transitive
// descendant, via iterative frontier expansion so arbitrary depth is safe.
func ResolveCategory(db *gorm.DB, cache *CategoryCache, categoryID uint) ([]uint, error) {
	nodes, err := cache.load(db)
	if err != nil {
		return nil, err
	}

	children := make(map[uint][]uint, len(nodes))
	exists := make(map[uint]bool, len(nodes))
	for _, n := range nodes {
		exists[n.ID] = true
		if n.ParentID != nil {
			children[*n.ParentID] = append(children[*n.ParentID], n.ID)
		}
	}
	if !exists[categoryID] {
		return nil, ErrCategoryNotFound
	}

	resolved := []uint{categoryID}
	seen := map[uint]bool{categoryID: true}
	frontier := []uint{categoryID}

	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= maxCategoryDepth {
			return nil, ErrCategoryCycle
		}
		var next []uint
		for _, id := range frontier {
			for _, child := range children[id] {
				if seen[child] {
					return nil, ErrCategoryCycle
				}
				seen[child] = true
				resolved = append(resolved, child)
				next = append(next, child)
			}
		}
		frontier = next
	}
	return resolved, nil
}

// CategoryTree returns top-level categories with their direct children, in
// name order, for the navigation menu.
func CategoryTree(db *gorm.DB, cache *CategoryCache) ([]CategoryTreeNode, error) {
	nodes, err := cache.load(db)
	if err != nil {
		return nil, err
	}

	byParent := make(map[uint][]CategoryNode)
	var roots []CategoryNode
	for _, n := range nodes {
		if n.ParentID == nil {
			roots = append(roots, n)
		} else {
			byParent[*n.ParentID] = append(byParent[*n.ParentID], n)
		}
	}

	sortByName(roots)
	tree := make([]CategoryTreeNode, 0, len(roots))
	for _, root := range roots {
		kids := byParent[root.ID]
		sortByName(kids)
		tree = append(tree, CategoryTreeNode{CategoryNode: root, Children: kids})
	}
	return tree, nil
}

func sortByName(nodes []CategoryNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Name != nodes[j].Name {
			return nodes[i].Name < nodes[j].Name
		}
		return nodes[i].ID < nodes[j].ID
	})
}
