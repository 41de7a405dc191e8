package hubuum

// FieldType is the value type of a schema field.
type FieldType int

const (
	FieldInt FieldType = iota
	FieldString
	FieldBool
	FieldTime
	FieldJSON
	// FieldRef marks a field holding a reference to another resource. In
	// the get/post/patch shapes it is always carried as an integer id named
	// "<field>_id"; whether the full record holds the nested object or the
	// bare id is an explicit per-field choice in the schema.
	FieldRef
)

// DataType maps the field type onto the filter applicability categories.
func (t FieldType) DataType() DataType {
	switch t {
	case FieldInt, FieldTime, FieldRef:
		return TypeNumericOrDate
	case FieldBool:
		return TypeBoolean
	case FieldJSON:
		return TypeArray
	default:
		return TypeString
	}
}

// Field is one annotated field of a resource description.
type Field struct {
	Name     string
	Type     FieldType
	ReadOnly bool
	PostOnly bool
	Optional bool
	// AsID marks a foreign-key reference field (FieldRef).
	AsID bool
	// NestedInRecord chooses the nested-object form for an AsID field in
	// the full record. Must be set explicitly; it is never inferred.
	NestedInRecord bool
	// ListHeader overrides the column header in tabular rendering. It never
	// affects serialization keys.
	ListHeader string
}

// Schema is a developer-authored resource description. It exists to drive
// shape generation and validation; it is not a runtime wire entity.
type Schema struct {
	Name string
	// NameField is the field used for name-based selection ("name" unless
	// overridden, e.g. "groupname" for groups, "username" for users).
	NameField string
	// Endpoint binds the kind to its collection path. Set explicitly per
	// kind; EndpointForResource provides the derived default.
	Endpoint Endpoint
	Fields   []Field
}

// ShapeField is one field of a generated shape.
type ShapeField struct {
	Name     string
	Type     FieldType
	Optional bool
}

// Shapes holds the four generated field lists for a resource kind.
type Shapes struct {
	Main  []ShapeField
	Get   []ShapeField
	Post  []ShapeField
	Patch []ShapeField
}

// Classify partitions the schema's fields into the four output shapes:
//
//   - Main: every non-post-only field, carrying the declared type.
//   - Get: every non-post-only field, all optional, AsID fields renamed to
//     "<name>_id" as integers.
//   - Post: every non-read-only field plus post-only fields; optionality is
//     kept, AsID fields become integer ids.
//   - Patch: like Post but everything optional; post-only fields excluded.
//
// A field flagged both post-only and read-only is an illegal combination
// and fails classification.
func (s Schema) Classify() (Shapes, error) {
	var shapes Shapes

	for _, field := range s.Fields {
		if field.PostOnly && field.ReadOnly {
			return Shapes{}, &SchemaError{
				Resource: s.Name,
				Field:    field.Name,
				Reason:   "cannot be both post-only and read-only",
			}
		}

		idName := field.Name
		idType := field.Type

		if field.AsID {
			idName = field.Name + "_id"
			idType = FieldInt
		}

		if !field.PostOnly {
			shapes.Main = append(shapes.Main, ShapeField{
				Name:     field.Name,
				Type:     field.Type,
				Optional: field.Optional,
			})
			shapes.Get = append(shapes.Get, ShapeField{
				Name:     idName,
				Type:     idType,
				Optional: true,
			})
		}

		switch {
		case field.PostOnly:
			shapes.Post = append(shapes.Post, ShapeField{
				Name:     idName,
				Type:     idType,
				Optional: field.Optional,
			})
		case !field.ReadOnly:
			shapes.Post = append(shapes.Post, ShapeField{
				Name:     idName,
				Type:     idType,
				Optional: field.Optional,
			})
			shapes.Patch = append(shapes.Patch, ShapeField{
				Name:     idName,
				Type:     idType,
				Optional: true,
			})
		}
	}

	return shapes, nil
}

// displayFieldPreference is the order in which fields are considered when
// picking what to print for a record.
var displayFieldPreference = []string{"name", "user", "username", "id"}

// DisplayField returns the field used for the record's display form: the
// first of name, user, username, or id present in the schema.
func (s Schema) DisplayField() string {
	for _, candidate := range displayFieldPreference {
		for _, field := range s.Fields {
			if field.Name == candidate {
				return candidate
			}
		}
	}

	return "id"
}

// fieldByName looks up a schema field.
func (s Schema) fieldByName(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}

	return Field{}, false
}

// Validate runs generation-time checks: classification must succeed and the
// kind's name must resolve to its bound endpoint.
func (s Schema) Validate() error {
	if _, err := s.Classify(); err != nil {
		return err
	}

	endpoint, err := EndpointForResource(s.Name)
	if err != nil {
		return err
	}

	if endpoint != s.Endpoint {
		return &SchemaError{
			Resource: s.Name,
			Field:    "",
			Reason:   "bound endpoint does not match the derived collection endpoint",
		}
	}

	return nil
}
