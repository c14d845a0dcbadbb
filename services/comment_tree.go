package services

import (
	"sort"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/models"
)

// CommentNode is a comment together with its nested replies
type CommentNode struct {
	models.Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree nests a flat comment list into a forest.
//
// Input order is preserved at every level, so callers pass comments sorted by creation time.
// A comment whose parent is not in the list is placed at the root rather than dropped:
// deleting a comment only removes its direct replies, so deeper replies can outlive their parent.
func BuildCommentTree(comments []models.Comment) []*CommentNode {
	index := make(map[uuid.UUID]*CommentNode, len(comments))
	for i := range comments {
		index[comments[i].ID] = &CommentNode{Comment: comments[i], Replies: []*CommentNode{}}
	}

	roots := make([]*CommentNode, 0)
	for i := range comments {
		node := index[comments[i].ID]
		if parentID := comments[i].ParentCommentID; parentID != nil {
			if parent, ok := index[*parentID]; ok && parent != node {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// SortNewestFirst reorders nodes and all nested replies by creation time, newest first.
// Ties keep their existing relative order.
func SortNewestFirst(nodes []*CommentNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].CreatedAt.After(nodes[j].CreatedAt)
	})
	for _, node := range nodes {
		SortNewestFirst(node.Replies)
	}
}

// CountNodes returns the number of comments in the forest
func CountNodes(nodes []*CommentNode) int {
	total := 0
	for _, node := range nodes {
		total += 1 + CountNodes(node.Replies)
	}
	return total
}

// Depth returns how deep id sits in a parent chain, where a top-level comment has depth 1.
// parentOf resolves a comment's parent; a missing parent ends the chain.
func Depth(id uuid.UUID, parentOf func(uuid.UUID) (*uuid.UUID, bool)) int {
	depth := 1
	seen := map[uuid.UUID]bool{id: true}
	current := id
	for {
		parent, ok := parentOf(current)
		if !ok || parent == nil || seen[*parent] {
			return depth
		}
		if _, exists := parentOf(*parent); !exists {
			return depth
		}
		seen[*parent] = true
		current = *parent
		depth++
	}
}
