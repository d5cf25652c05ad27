package main

import (
	"context"
	"flag"
	"strings"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/epimap/epimap-api/share/geojson"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("epimap")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	var boundaryFile string
	flag.StringVar(&boundaryFile, "f", "world.geo.json.gz", "path of the world boundary geo json file")
	flag.Parse()

	ctx := context.Background()
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	if err := geojson.ImportWorldBoundary(client, viper.GetString("mongo.database"), boundaryFile); err != nil {
		panic(err)
	}
}
