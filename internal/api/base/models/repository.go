// Package models holds the shared repository-layer types (pagination, counts).
package models

// PaginateResult is one page of a paginated query.
type PaginateResult[T any] struct {
	Page      int64 `json:"page" bson:"page"`           // Current page, 1-based
	Limit     int64 `json:"limit" bson:"limit"`         // Items per page
	ItemCount int64 `json:"itemCount" bson:"itemCount"` // Items in this page
	Items     []T   `json:"items" bson:"items"`
	Total     int64 `json:"total" bson:"total"`         // Total matching items
	TotalPage int64 `json:"totalPage" bson:"totalPage"` // Total pages
}

// CountResult is the result of a count query.
type CountResult struct {
	TotalCount int64 `json:"totalCount" bson:"totalCount"`
	Limit      int64 `json:"limit" bson:"limit"`
	TotalPage  int64 `json:"totalPage" bson:"totalPage"`
}
