package models

import "github.com/aircast/aircast/internal/bookmark"

// BookmarkListResponse is the response for listing saved stations.
type BookmarkListResponse struct {
	Bookmarks []bookmark.Bookmark `json:"bookmarks"`
	Count     int                 `json:"count"`
}

// BookmarkToggleResponse reports the outcome of a bookmark toggle: Added is
// true when the station was saved and false when an existing bookmark was
// removed instead.
type BookmarkToggleResponse struct {
	ID    string `json:"id"`
	Added bool   `json:"added"`
}
