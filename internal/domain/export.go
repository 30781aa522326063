package domain

import "time"

// Snapshot of the current session, suitable for download or archival.
// Meeting points are nil when they have not been computed.
type Export struct {
	Locations  []Location
	ByDistance *Coordinates
	ByTravel   *Coordinates
	ExportedAt time.Time
}

// FileName returns the download name for the export, keyed by its UTC date.
func (e Export) FileName() string {
	return "meeting-points-" + e.ExportedAt.UTC().Format("2006-01-02") + ".json"
}
