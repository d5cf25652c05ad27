package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/epimap/epimap-api/external/ecdc"
	"github.com/epimap/epimap-api/geo"
	"github.com/epimap/epimap-api/render"
	"github.com/epimap/epimap-api/schema"
	"github.com/epimap/epimap-api/share/geojson"
	"github.com/epimap/epimap-api/share/population"
	"github.com/epimap/epimap-api/store"
)

const (
	logPrefix      = "builder"
	defaultTimeout = 15 * time.Second
)

var defaultColumns = []string{
	string(schema.ColumnSumCases),
	string(schema.ColumnSumDeaths),
	string(schema.ColumnSumCasesPerCapita),
	string(schema.ColumnSumDeathsPerCapita),
}

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

func buildJobs() ([]mapJob, error) {
	columns := viper.GetStringSlice("builder.columns")
	if len(columns) == 0 {
		columns = defaultColumns
	}

	logScale := true
	if viper.IsSet("builder.log_scale") {
		logScale = viper.GetBool("builder.log_scale")
	}

	jobs := make([]mapJob, 0, 2*len(columns))
	for _, name := range columns {
		column, ok := schema.ParseColumn(name)
		if !ok {
			return nil, fmt.Errorf("unknown column in builder.columns: %s", name)
		}
		jobs = append(jobs,
			mapJob{Column: column, LogScale: logScale},
			mapJob{Column: column, LogScale: logScale, Animated: true},
		)
	}
	return jobs, nil
}

func main() {
	var configFile string
	var force bool

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.BoolVar(&force, "f", false, "re-download the dataset even when cached")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	dataDir := viper.GetString("data.dir")
	if dataDir == "" {
		dataDir = "./data"
	}

	populationFile := viper.GetString("data.population")
	if populationFile == "" {
		populationFile = "./data/population.csv"
	}
	populationTable, err := population.Load(populationFile)
	if nil != err {
		log.Panicf("load population table with error: %s", err)
	}

	geoJSONFile := viper.GetString("data.geojson")
	if geoJSONFile == "" {
		geoJSONFile = "./data/world.geo.json.gz"
	}
	boundary, err := geojson.LoadFeatureCollection(geoJSONFile)
	if nil != err {
		log.Panicf("load boundary with error: %s", err)
	}

	jobs, err := buildJobs()
	if nil != err {
		log.Panic(err)
	}

	outDir := viper.GetString("builder.out")
	if outDir == "" {
		outDir = "./maps"
	}

	b := &builder{
		source:     ecdc.NewClient(viper.GetString("ecdc.page_url"), dataDir, force),
		population: populationTable,
		boundary:   boundary,
		index:      geo.NewFeatureIndex(boundary),
		outDir:     outDir,
		settings: render.MapSettings{
			CenterLat:  viper.GetFloat64("map.center.lat"),
			CenterLong: viper.GetFloat64("map.center.long"),
			Zoom:       viper.GetInt("map.zoom"),
		},
		jobs:           jobs,
		chartCountries: viper.GetStringSlice("builder.chart_countries"),
	}
	if b.settings.Zoom == 0 {
		b.settings.Zoom = 2
	}

	// mongodb is optional for the builder; without it the run only
	// renders the map pages
	var mongoClient *mongo.Client
	if conn := viper.GetString("mongo.conn"); conn != "" {
		opts := options.Client().ApplyURI(conn)
		opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
		mongoClient, err = mongo.NewClient(opts)
		if nil != err {
			log.Panicf("create mongo client with error: %s", err)
		}

		if err := mongoClient.Connect(context.Background()); nil != err {
			log.Panicf("connect mongo database with error: %s", err)
		}

		b.mongoStore = store.NewMongoStore(
			mongoClient,
			viper.GetString("mongo.database"),
		)
	}

	if err := b.Run(); nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Fatal("map build failed")
	}

	if mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()

		log.Info("Shutting down mongo store")
		_ = mongoClient.Disconnect(ctx)
	}
}
