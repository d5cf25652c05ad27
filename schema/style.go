package schema

const (
	SnapshotCollection = "snapshot"
)

// Style controls the appearance of one map feature at one point in time.
type Style struct {
	Color   string  `json:"color" bson:"color"`
	Opacity float64 `json:"opacity" bson:"opacity"`
}

// StyleDictionary maps feature identifiers to a single style, used for
// static maps.
type StyleDictionary map[string]Style

// TimeStyleDictionary maps feature identifiers to time-keyed styles, used
// for time-slider maps. Time keys are unix timestamps at day resolution,
// in seconds, as decimal strings.
type TimeStyleDictionary map[string]map[string]Style

// ValueRange is the value interval the color scale is built from.
type ValueRange struct {
	Min float64 `json:"min_value"`
	Max float64 `json:"max_value"`
}

// Snapshot describes one completed pipeline run persisted for bookkeeping.
type Snapshot struct {
	ID          string `json:"id" bson:"id"`
	CreatedTime int64  `json:"created_time" bson:"created_time"`
	Countries   int    `json:"countries" bson:"countries"`
	Days        int    `json:"days" bson:"days"`
}
