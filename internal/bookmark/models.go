// Package bookmark provides durable persistence of user-saved stations.
package bookmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aircast/aircast/internal/history"
	"github.com/aircast/aircast/internal/station"
)

// Bookmark errors.
var (
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrStorage          = errors.New("bookmark storage unavailable")
)

// Snapshot is the station state captured at bookmark time: the summary, the
// history known at that moment, and the save timestamp.
type Snapshot struct {
	station.Summary

	// StationID is the provider's own station identifier, when known.
	StationID string `json:"stationId,omitempty"`

	History      []history.Point `json:"history,omitempty"`
	BookmarkedAt time.Time       `json:"bookmarkedAt"`
}

// Bookmark is one entry in the saved list. Station is nil for legacy entries
// that were stored as a bare id string.
type Bookmark struct {
	ID      string    `json:"id"`
	Station *Snapshot `json:"station"`
}

// UnmarshalJSON tolerates the legacy storage format in which an entry is a
// bare id string instead of an object. Bare strings normalize to
// {id, station: null}.
func (b *Bookmark) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		b.ID = id
		b.Station = nil
		return nil
	}

	type alias Bookmark
	var full alias
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}
	*b = Bookmark(full)
	return nil
}

// IDFor derives the deterministic bookmark id for a station snapshot. The
// prefix tags which identity source was used so it stays recoverable:
// provider id, location name, or coordinate pair, in that order of
// preference.
func IDFor(s *Snapshot) string {
	switch {
	case s == nil:
		return ""
	case s.StationID != "":
		return "id:" + s.StationID
	case s.Location != "":
		return "loc:" + s.Location
	default:
		return fmt.Sprintf("coords:%v,%v", s.Latitude, s.Longitude)
	}
}
