package hubuum

import (
	"context"
	"encoding/json"
	"time"
)

// Class is the full record of a class. The record carries the owning
// namespace as a nested object; the parameter shapes refer to it by id.
type Class struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Namespace      Namespace       `json:"namespace"`
	JSONSchema     json.RawMessage `json:"json_schema"`
	ValidateSchema *bool           `json:"validate_schema"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ClassGet narrows a class search. The namespace is matched by id.
type ClassGet struct {
	ID             *int            `json:"id,omitempty"`
	Name           *string         `json:"name,omitempty"`
	Description    *string         `json:"description,omitempty"`
	NamespaceID    *int            `json:"namespace_id,omitempty"`
	JSONSchema     json.RawMessage `json:"json_schema,omitempty"`
	ValidateSchema *bool           `json:"validate_schema,omitempty"`
	CreatedAt      *time.Time      `json:"created_at,omitempty"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}

// ClassPost creates a class in the given namespace.
type ClassPost struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	NamespaceID    int             `json:"namespace_id"`
	JSONSchema     json.RawMessage `json:"json_schema,omitempty"`
	ValidateSchema *bool           `json:"validate_schema,omitempty"`
}

// ClassPatch updates a class.
type ClassPatch struct {
	Name           *string         `json:"name,omitempty"`
	Description    *string         `json:"description,omitempty"`
	NamespaceID    *int            `json:"namespace_id,omitempty"`
	JSONSchema     json.RawMessage `json:"json_schema,omitempty"`
	ValidateSchema *bool           `json:"validate_schema,omitempty"`
}

var classSchema = Schema{
	Name:      "Class",
	NameField: "name",
	Endpoint:  EndpointClasses,
	Fields: []Field{
		{Name: "id", Type: FieldInt, ReadOnly: true},
		{Name: "name", Type: FieldString, ListHeader: "Name"},
		{Name: "description", Type: FieldString, ListHeader: "Description"},
		{Name: "namespace", Type: FieldRef, AsID: true, NestedInRecord: true, ListHeader: "Namespace"},
		{Name: "json_schema", Type: FieldJSON, Optional: true, ListHeader: "Schema"},
		{Name: "validate_schema", Type: FieldBool, Optional: true, ListHeader: "Validate"},
		{Name: "created_at", Type: FieldTime, ReadOnly: true, ListHeader: "Created"},
		{Name: "updated_at", Type: FieldTime, ReadOnly: true, ListHeader: "Updated"},
	},
}

func (Class) Endpoint() Endpoint { return EndpointClasses }
func (Class) Schema() Schema     { return classSchema }
func (Class) NameField() string  { return "name" }
func (c Class) GetID() int       { return c.ID }

func (Class) BuildParams(tuples []FilterTuple) []QueryFilter {
	return buildQueryFilters(tuples)
}

func (c Class) String() string { return c.Name }

// ClassesClient operates on the class collection.
type ClassesClient struct {
	collection[Class]
}

// Classes returns the class collection client.
func (c *AuthenticatedClient) Classes() *ClassesClient {
	return &ClassesClient{collection[Class]{client: c}}
}

// Create adds a class.
func (c *ClassesClient) Create(ctx context.Context, params ClassPost) (*Class, error) {
	return create[Class](ctx, c.client, nil, params)
}

// Update patches the class with the given id.
func (c *ClassesClient) Update(ctx context.Context, id int, params ClassPatch) (*Class, error) {
	return update[Class](ctx, c.client, id, nil, params)
}

// Get fetches the single class matching the populated filter fields.
func (c *ClassesClient) Get(ctx context.Context, params ClassGet) (*Class, error) {
	return c.get(ctx, params)
}

// List fetches all classes matching the populated filter fields.
func (c *ClassesClient) List(ctx context.Context, params ClassGet) ([]Class, error) {
	return c.list(ctx, params)
}

// ByName fetches a class by exact name.
func (c *ClassesClient) ByName(ctx context.Context, name string) (*Class, error) {
	return c.selectOne(ctx, "name", name)
}

// Select fetches the class with the given id and wraps it in a handle.
func (c *ClassesClient) Select(ctx context.Context, id int) (*ClassHandle, error) {
	class, err := c.collection.Select(ctx, id)
	if err != nil {
		return nil, err
	}

	return c.Handle(*class), nil
}

// SelectByName fetches a class by exact name and wraps it in a handle.
func (c *ClassesClient) SelectByName(ctx context.Context, name string) (*ClassHandle, error) {
	class, err := c.ByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return c.Handle(*class), nil
}

// Handle wraps a record for navigation into its objects.
func (c *ClassesClient) Handle(class Class) *ClassHandle {
	return &ClassHandle{Class: class, client: c.client}
}

// ClassHandle pairs a class record with the client it was fetched through.
type ClassHandle struct {
	Class

	client *AuthenticatedClient
}

// Objects returns the object collection scoped to this class.
func (h *ClassHandle) Objects() *ObjectsClient {
	return h.client.Objects(h.ID)
}
