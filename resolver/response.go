package resolver

// Response is the public schema of the service. IP and Type are
// always present; everything else is omitted when unknown. There are
// no null-filled placeholders: an absent section means the databases
// have no answer for it.
//
// Responses may be shared between requests through the cache, so
// callers must treat them as read-only.
type Response struct {
	IP            string       `json:"ip"`
	Type          string       `json:"type"`
	Continent     string       `json:"continent,omitempty"`
	ContinentCode string       `json:"continent_code,omitempty"`
	Country       *Country     `json:"country,omitempty"`
	InEU          *bool        `json:"is_eu,omitempty"`
	Region        string       `json:"region,omitempty"`
	RegionCode    string       `json:"region_code,omitempty"`
	City          string       `json:"city,omitempty"`
	Latitude      *float64     `json:"latitude,omitempty"`
	Longitude     *float64     `json:"longitude,omitempty"`
	Timezone      string       `json:"timezone,omitempty"`
	PostalCode    string       `json:"postal_code,omitempty"`
	CountryMeta   *CountryMeta `json:"country_meta,omitempty"`
	Connection    *Connection  `json:"connection,omitempty"`
	Raw           *RawSections `json:"raw,omitempty"`
}

type Country struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// CountryMeta is the joined static table entry for the country of the
// address.
type CountryMeta struct {
	CallingCode      string   `json:"calling_code,omitempty"`
	Capital          string   `json:"capital,omitempty"`
	Borders          []string `json:"borders,omitempty"`
	FlagURL          string   `json:"flag_url,omitempty"`
	FlagEmoji        string   `json:"flag_emoji,omitempty"`
	FlagEmojiUnicode string   `json:"flag_emoji_unicode,omitempty"`
}

// Connection describes the network operator of the address.
type Connection struct {
	ASN          uint   `json:"asn"`
	ISP          string `json:"isp,omitempty"`
	Organization string `json:"organization,omitempty"`
	Route        string `json:"route,omitempty"`
	Domain       string `json:"domain,omitempty"`
}

// RawSections carries the undecoded database documents for raw mode.
// Field names and nesting here belong to the databases, not to the
// service, and can change with a database build.
type RawSections struct {
	City map[string]interface{} `json:"city,omitempty"`
	ASN  map[string]interface{} `json:"asn,omitempty"`
}
