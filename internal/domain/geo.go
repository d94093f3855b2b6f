package domain

// Bounds is the smallest latitude/longitude box containing a set of locations.
// The UI passes it to the map's fit-bounds call.
type Bounds struct {
	Northeast LatLng
	Southwest LatLng
}

// Extend grows b to include p.
func (b Bounds) Extend(p LatLng) Bounds {
	b.Northeast.Lat = max(b.Northeast.Lat, p.Lat)
	b.Northeast.Lng = max(b.Northeast.Lng, p.Lng)
	b.Southwest.Lat = min(b.Southwest.Lat, p.Lat)
	b.Southwest.Lng = min(b.Southwest.Lng, p.Lng)
	return b
}

// BoundsOf returns the bounds of locs. ok is false when locs is empty,
// in which case the map should keep its current viewport.
func BoundsOf(locs []LatLng) (b Bounds, ok bool) {
	if len(locs) == 0 {
		return Bounds{}, false
	}
	b = Bounds{Northeast: locs[0], Southwest: locs[0]}
	for _, p := range locs[1:] {
		b = b.Extend(p)
	}
	return b, true
}
