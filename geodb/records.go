package geodb

// CityRecord is a flattened view of a single city database document.
// Any field can be legitimately empty: database coverage is uneven
// and a found document does not guarantee every attribute.
type CityRecord struct {
	ContinentCode  string
	ContinentName  string
	CountryCode    string
	CountryName    string
	InEU           bool
	RegionCode     string
	RegionName     string
	CityName       string
	Latitude       float64
	Longitude      float64
	HasCoordinates bool
	TimeZone       string
	PostalCode     string
}

// ASNRecord describes the network operator of an address. Route is
// the matched prefix in CIDR form.
type ASNRecord struct {
	Number       uint
	Organization string
	Route        string
}

// DatabaseInfo describes one of the opened databases, straight from
// the mmdb metadata section.
type DatabaseInfo struct {
	Path        string `json:"path"`
	Type        string `json:"type"`
	BuildEpoch  int64  `json:"build_epoch"`
	NodeCount   uint   `json:"node_count"`
	IPVersion   uint   `json:"ip_version"`
	Description string `json:"description,omitempty"`
}
