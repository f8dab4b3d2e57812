package models

import "github.com/paulmach/orb"

// LocationEntry is a district with its coordinates. Static, read-only.
type LocationEntry struct {
	State     string  `json:"state"`
	District  string  `json:"district"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point returns the location as an orb point (lon, lat order).
func (l LocationEntry) Point() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

type NearestDistrict struct {
	LocationEntry
	DistanceKm float64 `json:"distance_km"`
}
