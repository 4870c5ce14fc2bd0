package config

import (
	"io"
	"io/ioutil"
	"net"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/juju/errors"
)

const (
	DefaultListen            = ":8080"
	DefaultResponseCacheSize = 8192
	DefaultReverseDNSTimeout = 2 * time.Second
	DefaultReverseDNSCache   = 4096
	DefaultPeeringDBTimeout  = 5 * time.Second
	DefaultPeeringDBCache    = 1024
)

type duration struct {
	time.Duration
}

func (dur *duration) UnmarshalText(text []byte) (err error) {
	dur.Duration, err = time.ParseDuration(string(text))
	return
}

// DatabasesConfig keeps paths to the binary GeoLite2-format databases.
// Both files are mandatory: the service does not start without them.
type DatabasesConfig struct {
	City string `toml:"city"`
	ASN  string `toml:"asn"`
}

// MetadataConfig points to the static country metadata file produced
// by the offline generator.
type MetadataConfig struct {
	Path string `toml:"path"`
}

type CacheConfig struct {
	Responses int `toml:"responses"`
}

// ReverseDNSConfig controls the optional PTR enrichment of the
// connection section. Disabled unless explicitly turned on: reverse
// DNS is the only lookup which leaves the host.
type ReverseDNSConfig struct {
	Enabled   bool     `toml:"enabled"`
	Timeout   duration `toml:"timeout"`
	CacheSize int      `toml:"cache_size"`
}

func (r ReverseDNSConfig) GetTimeout() time.Duration {
	if r.Timeout.Duration == 0 {
		return DefaultReverseDNSTimeout
	}

	return r.Timeout.Duration
}

func (r ReverseDNSConfig) GetCacheSize() int {
	if r.CacheSize == 0 {
		return DefaultReverseDNSCache
	}

	return r.CacheSize
}

// PeeringDBConfig controls the optional PeeringDB website fallback
// for the connection domain. Disabled unless explicitly turned on for
// the same reason as reverse DNS: it makes requests to a remote
// service.
type PeeringDBConfig struct {
	Enabled   bool     `toml:"enabled"`
	Timeout   duration `toml:"timeout"`
	CacheSize int      `toml:"cache_size"`
}

func (p PeeringDBConfig) GetTimeout() time.Duration {
	if p.Timeout.Duration == 0 {
		return DefaultPeeringDBTimeout
	}

	return p.Timeout.Duration
}

func (p PeeringDBConfig) GetCacheSize() int {
	if p.CacheSize == 0 {
		return DefaultPeeringDBCache
	}

	return p.CacheSize
}

type Config struct {
	Listen     string           `toml:"listen"`
	Databases  DatabasesConfig  `toml:"databases"`
	Metadata   MetadataConfig   `toml:"metadata"`
	Cache      CacheConfig      `toml:"cache"`
	ReverseDNS ReverseDNSConfig `toml:"reverse_dns"`
	PeeringDB  PeeringDBConfig  `toml:"peeringdb"`
}

func (c Config) GetListen() string {
	if c.Listen == "" {
		return DefaultListen
	}

	return c.Listen
}

func (c Config) GetResponseCacheSize() int {
	if c.Cache.Responses == 0 {
		return DefaultResponseCacheSize
	}

	return c.Cache.Responses
}

func Parse(file io.Reader) (*Config, error) {
	conf := &Config{}

	buf, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot read config file")
	}

	if _, err := toml.Decode(string(buf), conf); err != nil {
		return nil, errors.Annotate(err, "Cannot parse config file")
	}

	if err = validate(conf); err != nil {
		return nil, errors.Annotate(err, "Invalid value")
	}

	return conf, nil
}

func validate(conf *Config) error {
	if _, _, err := net.SplitHostPort(conf.GetListen()); err != nil {
		return errors.Annotatef(err, "Incorrect listen address %s", conf.Listen)
	}

	if conf.Databases.City == "" {
		return errors.Errorf("Path to the city database is not set")
	}

	if conf.Databases.ASN == "" {
		return errors.Errorf("Path to the ASN database is not set")
	}

	if conf.Metadata.Path == "" {
		return errors.Errorf("Path to the country metadata file is not set")
	}

	if conf.Cache.Responses < 0 {
		return errors.Errorf("Incorrect response cache size %d", conf.Cache.Responses)
	}

	if conf.ReverseDNS.CacheSize < 0 {
		return errors.Errorf("Incorrect reverse DNS cache size %d", conf.ReverseDNS.CacheSize)
	}

	if conf.PeeringDB.CacheSize < 0 {
		return errors.Errorf("Incorrect PeeringDB cache size %d", conf.PeeringDB.CacheSize)
	}

	return nil
}
