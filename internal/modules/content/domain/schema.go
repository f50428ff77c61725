package domain

type SchemaType string

const (
	TypeObject SchemaType = "object"
	TypeArray  SchemaType = "array"
	TypeString SchemaType = "string"
)

// Schema describes the JSON shape a generator must answer with.
type Schema struct {
	Type       SchemaType
	Properties map[string]*Schema
	Items      *Schema
	Required   []string
}

func stringSchema() *Schema { return &Schema{Type: TypeString} }

func DevotionalSchema() Schema {
	return Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"title":           stringSchema(),
			"verse":           stringSchema(),
			"reflection":      stringSchema(),
			"practicalPoints": {Type: TypeArray, Items: stringSchema()},
			"prayer":          stringSchema(),
		},
		Required: []string{"title", "verse", "reflection", "practicalPoints", "prayer"},
	}
}

func TermSchema() Schema {
	return Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"term":       stringSchema(),
			"definition": stringSchema(),
		},
		Required: []string{"term", "definition"},
	}
}
