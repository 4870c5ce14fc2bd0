package main

import (
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/9seconds/whereabouts/api"
	"github.com/9seconds/whereabouts/config"
	"github.com/9seconds/whereabouts/countrymeta"
	"github.com/9seconds/whereabouts/geodb"
	"github.com/9seconds/whereabouts/resolver"
)

var (
	app = kingpin.New(
		"whereabouts",
		"Local IP geolocation lookup service")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("WHEREABOUTS_DEBUG").
		Bool()
	configFile = app.Arg("config-path", "Path to the config.").
			Required().
			File()
)

func init() {
	app.Version("0.1.0")
	log.SetFormatter(&log.TextFormatter{})
	log.SetLevel(log.WarnLevel)
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	conf, err := config.Parse(*configFile)
	if err != nil {
		log.Fatalf(err.Error())
	}

	geo, err := geodb.Open(conf.Databases.City, conf.Databases.ASN)
	if err != nil {
		log.Fatalf(err.Error())
	}
	defer geo.Close()

	meta, err := countrymeta.Load(conf.Metadata.Path)
	if err != nil {
		log.Fatalf(err.Error())
	}

	log.WithFields(log.Fields{
		"countries": meta.Len(),
	}).Debug("Loaded country metadata.")

	opts := resolver.Opts{
		CacheSize: conf.GetResponseCacheSize(),
	}

	if conf.ReverseDNS.Enabled {
		domains, err := resolver.NewDomainResolver(
			conf.ReverseDNS.GetTimeout(),
			conf.ReverseDNS.GetCacheSize())
		if err != nil {
			log.Fatalf(err.Error())
		}

		opts.Domains = domains
	}

	if conf.PeeringDB.Enabled {
		websites, err := resolver.NewPeeringDB(
			conf.PeeringDB.GetTimeout(),
			conf.PeeringDB.GetCacheSize())
		if err != nil {
			log.Fatalf(err.Error())
		}

		opts.Websites = websites
	}

	res, err := resolver.New(geo, meta, opts)
	if err != nil {
		log.Fatalf(err.Error())
	}

	log.WithFields(log.Fields{
		"listen": conf.GetListen(),
	}).Info("Start server.")

	log.Fatal(http.ListenAndServe(conf.GetListen(), api.MakeServer(res, geo, meta)))
}
