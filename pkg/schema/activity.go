package schema

const ActivitySchemaTextV1 = `{
	"type": "record",
	"namespace": "dashboard",
	"name": "activity_event",
	"fields" : [
		{"name": "action", "type": "string"},
		{"name": "query", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "page", "type": "int"},
		{"name": "occurred_at", "type": "long"}
	]
}`

// ActivityEventV1 is the wire form of a dashboard user action.
// OccurredAt is unix milliseconds.
type ActivityEventV1 struct {
	Action     string `avro:"action"`
	Query      string `avro:"query"`
	ProductID  int64  `avro:"product_id"`
	Page       int    `avro:"page"`
	OccurredAt int64  `avro:"occurred_at"`
}
