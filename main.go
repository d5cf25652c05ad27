package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/epimap/epimap-api/api"
	"github.com/epimap/epimap-api/schema"
	"github.com/epimap/epimap-api/share/geojson"
	"github.com/epimap/epimap-api/store"
)

var server *api.Server

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("epimap")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// loadSeries reads every stored country series back from mongodb.
func loadSeries(mongoStore store.MongoStore) ([]schema.CountryDay, error) {
	countries, err := mongoStore.ListCountries()
	if nil != err {
		return nil, err
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("no stored series, run mapbuilder first")
	}

	var rows []schema.CountryDay
	for _, country := range countries {
		countryRows, err := mongoStore.GetCountrySeries(country)
		if nil != err {
			return nil, err
		}
		rows = append(rows, countryRows...)
	}

	snapshot, err := mongoStore.LatestSnapshot()
	if nil != err {
		log.WithField("prefix", "init").Warn("no snapshot recorded for stored series")
	} else {
		log.WithField("prefix", "init").Infof("serving snapshot %s (%d countries, %d days)",
			snapshot.ID, snapshot.Countries, snapshot.Days)
	}

	return rows, nil
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(initialCtx)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	mongoStore := store.NewMongoStore(
		mongoClient,
		viper.GetString("mongo.database"),
	)

	rows, err := loadSeries(mongoStore)
	if nil != err {
		log.Panicf("load stored series with error: %s", err)
	}

	geoJSONFile := viper.GetString("data.geojson")
	if geoJSONFile == "" {
		geoJSONFile = "./data/world.geo.json.gz"
	}
	boundary, err := geojson.LoadFeatureCollection(geoJSONFile)
	if nil != err {
		log.Panicf("load boundary with error: %s", err)
	}

	// Init http server
	server = api.NewServer(mongoStore, rows, boundary)
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
