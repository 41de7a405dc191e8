package hubuum

import (
	"context"
	"fmt"
	"time"
)

// ClassRelation links two classes. Object relations are only valid between
// objects whose classes are related.
type ClassRelation struct {
	ID                int       `json:"id"`
	FromHubuumClassID int       `json:"from_hubuum_class_id"`
	ToHubuumClassID   int       `json:"to_hubuum_class_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ClassRelationGet narrows a class relation search.
type ClassRelationGet struct {
	ID                *int       `json:"id,omitempty"`
	FromHubuumClassID *int       `json:"from_hubuum_class_id,omitempty"`
	ToHubuumClassID   *int       `json:"to_hubuum_class_id,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// ClassRelationPost creates a class relation.
type ClassRelationPost struct {
	FromHubuumClassID int `json:"from_hubuum_class_id"`
	ToHubuumClassID   int `json:"to_hubuum_class_id"`
}

// ClassRelationPatch updates a class relation.
type ClassRelationPatch struct {
	FromHubuumClassID *int `json:"from_hubuum_class_id,omitempty"`
	ToHubuumClassID   *int `json:"to_hubuum_class_id,omitempty"`
}

var classRelationSchema = Schema{
	Name:      "ClassRelation",
	NameField: "id",
	Endpoint:  EndpointClassRelations,
	Fields: []Field{
		{Name: "id", Type: FieldInt, ReadOnly: true},
		{Name: "from_hubuum_class_id", Type: FieldInt, ListHeader: "From"},
		{Name: "to_hubuum_class_id", Type: FieldInt, ListHeader: "To"},
		{Name: "created_at", Type: FieldTime, ReadOnly: true, ListHeader: "Created"},
		{Name: "updated_at", Type: FieldTime, ReadOnly: true, ListHeader: "Updated"},
	},
}

func (ClassRelation) Endpoint() Endpoint { return EndpointClassRelations }
func (ClassRelation) Schema() Schema     { return classRelationSchema }
func (ClassRelation) NameField() string  { return "id" }
func (r ClassRelation) GetID() int       { return r.ID }

func (ClassRelation) BuildParams(tuples []FilterTuple) []QueryFilter {
	return buildQueryFilters(tuples)
}

func (r ClassRelation) String() string {
	return fmt.Sprintf("%d -> %d", r.FromHubuumClassID, r.ToHubuumClassID)
}

// ClassRelationsClient operates on the class relation collection.
type ClassRelationsClient struct {
	collection[ClassRelation]
}

// ClassRelations returns the class relation collection client.
func (c *AuthenticatedClient) ClassRelations() *ClassRelationsClient {
	return &ClassRelationsClient{collection[ClassRelation]{client: c}}
}

// Create links two classes.
func (r *ClassRelationsClient) Create(ctx context.Context, params ClassRelationPost) (*ClassRelation, error) {
	return create[ClassRelation](ctx, r.client, nil, params)
}

// Update patches the class relation with the given id.
func (r *ClassRelationsClient) Update(ctx context.Context, id int, params ClassRelationPatch) (*ClassRelation, error) {
	return update[ClassRelation](ctx, r.client, id, nil, params)
}

// Get fetches the single class relation matching the populated filter
// fields.
func (r *ClassRelationsClient) Get(ctx context.Context, params ClassRelationGet) (*ClassRelation, error) {
	return r.get(ctx, params)
}

// List fetches all class relations matching the populated filter fields.
func (r *ClassRelationsClient) List(ctx context.Context, params ClassRelationGet) ([]ClassRelation, error) {
	return r.list(ctx, params)
}

// ObjectRelation links two objects under an existing class relation.
type ObjectRelation struct {
	ID                 int       `json:"id"`
	FromHubuumObjectID int       `json:"from_hubuum_object_id"`
	ToHubuumObjectID   int       `json:"to_hubuum_object_id"`
	ClassRelationID    int       `json:"class_relation_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ObjectRelationGet narrows an object relation search.
type ObjectRelationGet struct {
	ID                 *int       `json:"id,omitempty"`
	FromHubuumObjectID *int       `json:"from_hubuum_object_id,omitempty"`
	ToHubuumObjectID   *int       `json:"to_hubuum_object_id,omitempty"`
	ClassRelationID    *int       `json:"class_relation_id,omitempty"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// ObjectRelationPost creates an object relation.
type ObjectRelationPost struct {
	FromHubuumObjectID int `json:"from_hubuum_object_id"`
	ToHubuumObjectID   int `json:"to_hubuum_object_id"`
	ClassRelationID    int `json:"class_relation_id"`
}

// ObjectRelationPatch updates an object relation.
type ObjectRelationPatch struct {
	FromHubuumObjectID *int `json:"from_hubuum_object_id,omitempty"`
	ToHubuumObjectID   *int `json:"to_hubuum_object_id,omitempty"`
	ClassRelationID    *int `json:"class_relation_id,omitempty"`
}

var objectRelationSchema = Schema{
	Name:      "ObjectRelation",
	NameField: "id",
	Endpoint:  EndpointObjectRelations,
	Fields: []Field{
		{Name: "id", Type: FieldInt, ReadOnly: true},
		{Name: "from_hubuum_object_id", Type: FieldInt, ListHeader: "From"},
		{Name: "to_hubuum_object_id", Type: FieldInt, ListHeader: "To"},
		{Name: "class_relation_id", Type: FieldInt, ListHeader: "Class Relation"},
		{Name: "created_at", Type: FieldTime, ReadOnly: true, ListHeader: "Created"},
		{Name: "updated_at", Type: FieldTime, ReadOnly: true, ListHeader: "Updated"},
	},
}

func (ObjectRelation) Endpoint() Endpoint { return EndpointObjectRelations }
func (ObjectRelation) Schema() Schema     { return objectRelationSchema }
func (ObjectRelation) NameField() string  { return "id" }
func (r ObjectRelation) GetID() int       { return r.ID }

func (ObjectRelation) BuildParams(tuples []FilterTuple) []QueryFilter {
	return buildQueryFilters(tuples)
}

func (r ObjectRelation) String() string {
	return fmt.Sprintf("%d -> %d", r.FromHubuumObjectID, r.ToHubuumObjectID)
}

// ObjectRelationsClient operates on the object relation collection.
type ObjectRelationsClient struct {
	collection[ObjectRelation]
}

// ObjectRelations returns the object relation collection client.
func (c *AuthenticatedClient) ObjectRelations() *ObjectRelationsClient {
	return &ObjectRelationsClient{collection[ObjectRelation]{client: c}}
}

// Create links two objects under a class relation.
func (r *ObjectRelationsClient) Create(ctx context.Context, params ObjectRelationPost) (*ObjectRelation, error) {
	return create[ObjectRelation](ctx, r.client, nil, params)
}

// Update patches the object relation with the given id.
func (r *ObjectRelationsClient) Update(ctx context.Context, id int, params ObjectRelationPatch) (*ObjectRelation, error) {
	return update[ObjectRelation](ctx, r.client, id, nil, params)
}

// Get fetches the single object relation matching the populated filter
// fields.
func (r *ObjectRelationsClient) Get(ctx context.Context, params ObjectRelationGet) (*ObjectRelation, error) {
	return r.get(ctx, params)
}

// List fetches all object relations matching the populated filter fields.
func (r *ObjectRelationsClient) List(ctx context.Context, params ObjectRelationGet) ([]ObjectRelation, error) {
	return r.list(ctx, params)
}
