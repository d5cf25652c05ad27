package schema

const (
	BoundaryCollection = "boundary"
)

type Geometry struct {
	Type        string      `json:"type" bson:"type"`
	Coordinates interface{} `json:"coordinates" bson:"coordinates"`
}

// Feature - one geographic boundary polygon. The id is the feature
// identifier used to join tabular data onto the map geometry.
type Feature struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   Geometry               `json:"geometry"`
}

// Name returns the display name of the feature, or an empty string.
func (f Feature) Name() string {
	name, _ := f.Properties["name"].(string)
	return name
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Boundary - one boundary document as persisted in mongodb.
type Boundary struct {
	FeatureID string   `bson:"feature_id"`
	Country   string   `bson:"country"`
	Geometry  Geometry `bson:"geometry"`
}
