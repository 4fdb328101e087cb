package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aircast/aircast/internal/bookmark"
	"github.com/aircast/aircast/internal/history"
)

// TimeZoneMode selects how the chosen time column is rendered.
type TimeZoneMode string

const (
	TimeZoneLocal TimeZoneMode = "local"
	TimeZoneUTC   TimeZoneMode = "utc"
)

// bookmarkHeader is the fixed header of the bookmark export.
var bookmarkHeader = []string{
	"station_id", "location", "latitude", "longitude", "time_local", "time_utc", "value",
}

// stationHeader is the fixed header of the single-station export.
var stationHeader = []string{"time", "value"}

// BookmarkCSV renders the full bookmark list as CSV. Each history point of
// each bookmarked station becomes one row with the station metadata repeated;
// a bookmark without history still contributes a single metadata-only row so
// every saved station appears in the export. The time_local column follows
// mode and loc; time_utc is always included for auditability.
func BookmarkCSV(list []bookmark.Bookmark, mode TimeZoneMode, loc *time.Location) []byte {
	if loc == nil {
		loc = time.Local
	}

	rows := [][]string{bookmarkHeader}
	for _, item := range list {
		meta := bookmarkMeta(item)

		if item.Station == nil || len(item.Station.History) == 0 {
			rows = append(rows, append(meta, "", "", ""))
			continue
		}

		for _, h := range item.Station.History {
			utc := h.Time.UTC().Format(time.RFC3339)
			local := h.Time.In(loc).Format(time.RFC3339)

			selected := local
			if mode == TimeZoneUTC {
				selected = utc
			}

			row := append(append([]string{}, meta...), selected, utc, formatValue(h.Value))
			rows = append(rows, row)
		}
	}

	return WriteCSV(rows)
}

// BookmarkFilename returns the download name for a bookmark export.
func BookmarkFilename(now time.Time) string {
	return fmt.Sprintf("aqi-bookmarks-%d.csv", now.UnixMilli())
}

// StationCSV renders a single station's history windowed to the last `hours`
// points of the descending series, emitted in chronological order.
func StationCSV(points []history.Point, hours int) []byte {
	windowed := history.Chronological(history.Window(points, hours))

	rows := [][]string{stationHeader}
	for _, p := range windowed {
		rows = append(rows, []string{p.Time.UTC().Format(time.RFC3339), formatValue(p.Value)})
	}

	return WriteCSV(rows)
}

// StationFilename returns the download name for a station history export.
// Non-alphanumeric characters in the station name are replaced with
// underscores; hyphens survive.
func StationFilename(name string, hours int) string {
	if name == "" {
		name = "station"
	}
	return fmt.Sprintf("%s-history-%dh.csv", sanitizeName(name), hours)
}

func bookmarkMeta(item bookmark.Bookmark) []string {
	if item.Station == nil {
		return []string{item.ID, "", "", ""}
	}
	return []string{
		item.ID,
		item.Station.Location,
		formatValue(item.Station.Latitude),
		formatValue(item.Station.Longitude),
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sanitizeName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
