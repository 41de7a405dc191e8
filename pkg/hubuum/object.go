package hubuum

import (
	"context"
	"encoding/json"
	"strconv"
	"time"
)

// Object is the full record of an object. Objects always live inside a
// class; the class id in the path scopes every operation on them.
type Object struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	NamespaceID   int             `json:"namespace_id"`
	HubuumClassID int             `json:"hubuum_class_id"`
	Description   string          `json:"description"`
	Data          json.RawMessage `json:"data"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ObjectGet narrows an object search within a class.
type ObjectGet struct {
	ID            *int            `json:"id,omitempty"`
	Name          *string         `json:"name,omitempty"`
	NamespaceID   *int            `json:"namespace_id,omitempty"`
	HubuumClassID *int            `json:"hubuum_class_id,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Data          json.RawMessage `json:"data,omitempty"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// ObjectPost creates an object. The class is taken from the collection the
// client is scoped to, not from the payload.
type ObjectPost struct {
	Name          string          `json:"name"`
	NamespaceID   int             `json:"namespace_id"`
	HubuumClassID int             `json:"hubuum_class_id"`
	Description   string          `json:"description"`
	Data          json.RawMessage `json:"data,omitempty"`
}

// ObjectPatch updates an object.
type ObjectPatch struct {
	Name          *string         `json:"name,omitempty"`
	NamespaceID   *int            `json:"namespace_id,omitempty"`
	HubuumClassID *int            `json:"hubuum_class_id,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Data          json.RawMessage `json:"data,omitempty"`
}

var objectSchema = Schema{
	Name:      "Object",
	NameField: "name",
	Endpoint:  EndpointObjects,
	Fields: []Field{
		{Name: "id", Type: FieldInt, ReadOnly: true},
		{Name: "name", Type: FieldString, ListHeader: "Name"},
		{Name: "namespace_id", Type: FieldInt, ListHeader: "Namespace"},
		{Name: "hubuum_class_id", Type: FieldInt, ListHeader: "Class"},
		{Name: "description", Type: FieldString, ListHeader: "Description"},
		{Name: "data", Type: FieldJSON, Optional: true, ListHeader: "Data"},
		{Name: "created_at", Type: FieldTime, ReadOnly: true, ListHeader: "Created"},
		{Name: "updated_at", Type: FieldTime, ReadOnly: true, ListHeader: "Updated"},
	},
}

func (Object) Endpoint() Endpoint { return EndpointObjects }
func (Object) Schema() Schema     { return objectSchema }
func (Object) NameField() string  { return "name" }
func (o Object) GetID() int       { return o.ID }

func (Object) BuildParams(tuples []FilterTuple) []QueryFilter {
	return buildQueryFilters(tuples)
}

func (o Object) String() string { return o.Name }

// ObjectsClient operates on the objects of one class.
type ObjectsClient struct {
	collection[Object]

	classID int
}

// Objects returns the object collection client scoped to the given class.
func (c *AuthenticatedClient) Objects(classID int) *ObjectsClient {
	return &ObjectsClient{
		collection: collection[Object]{
			client:    c,
			urlParams: map[string]string{"class_id": strconv.Itoa(classID)},
		},
		classID: classID,
	}
}

// ClassID returns the class the collection is scoped to.
func (o *ObjectsClient) ClassID() int {
	return o.classID
}

// Create adds an object to the class.
func (o *ObjectsClient) Create(ctx context.Context, params ObjectPost) (*Object, error) {
	return create[Object](ctx, o.client, o.urlParams, params)
}

// Update patches the object with the given id.
func (o *ObjectsClient) Update(ctx context.Context, id int, params ObjectPatch) (*Object, error) {
	return update[Object](ctx, o.client, id, o.urlParams, params)
}

// Get fetches the single object matching the populated filter fields.
func (o *ObjectsClient) Get(ctx context.Context, params ObjectGet) (*Object, error) {
	return o.get(ctx, params)
}

// List fetches all objects matching the populated filter fields.
func (o *ObjectsClient) List(ctx context.Context, params ObjectGet) ([]Object, error) {
	return o.list(ctx, params)
}

// ByName fetches an object by exact name.
func (o *ObjectsClient) ByName(ctx context.Context, name string) (*Object, error) {
	return o.selectOne(ctx, "name", name)
}
