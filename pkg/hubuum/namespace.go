package hubuum

import (
	"context"
	"strconv"
	"time"
)

// Namespace is the full record of a namespace. The owning group is fixed at
// creation time and does not appear on the record; permissions are managed
// through the namespace handle instead.
type Namespace struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NamespaceGet narrows a namespace search.
type NamespaceGet struct {
	ID          *int       `json:"id,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// NamespacePost creates a namespace owned by the given group.
type NamespacePost struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GroupID     int    `json:"group_id"`
}

// NamespacePatch updates a namespace. Ownership cannot be changed here.
type NamespacePatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

var namespaceSchema = Schema{
	Name:      "Namespace",
	NameField: "name",
	Endpoint:  EndpointNamespaces,
	Fields: []Field{
		{Name: "id", Type: FieldInt, ReadOnly: true},
		{Name: "name", Type: FieldString, ListHeader: "Name"},
		{Name: "description", Type: FieldString, ListHeader: "Description"},
		{Name: "group_id", Type: FieldInt, PostOnly: true, ListHeader: "Group"},
		{Name: "created_at", Type: FieldTime, ReadOnly: true, ListHeader: "Created"},
		{Name: "updated_at", Type: FieldTime, ReadOnly: true, ListHeader: "Updated"},
	},
}

func (Namespace) Endpoint() Endpoint { return EndpointNamespaces }
func (Namespace) Schema() Schema     { return namespaceSchema }
func (Namespace) NameField() string  { return "name" }
func (n Namespace) GetID() int       { return n.ID }

func (Namespace) BuildParams(tuples []FilterTuple) []QueryFilter {
	return buildQueryFilters(tuples)
}

func (n Namespace) String() string { return n.Name }

// NamespacesClient operates on the namespace collection.
type NamespacesClient struct {
	collection[Namespace]
}

// Namespaces returns the namespace collection client.
func (c *AuthenticatedClient) Namespaces() *NamespacesClient {
	return &NamespacesClient{collection[Namespace]{client: c}}
}

// Create adds a namespace.
func (n *NamespacesClient) Create(ctx context.Context, params NamespacePost) (*Namespace, error) {
	return create[Namespace](ctx, n.client, nil, params)
}

// Update patches the namespace with the given id.
func (n *NamespacesClient) Update(ctx context.Context, id int, params NamespacePatch) (*Namespace, error) {
	return update[Namespace](ctx, n.client, id, nil, params)
}

// Get fetches the single namespace matching the populated filter fields.
func (n *NamespacesClient) Get(ctx context.Context, params NamespaceGet) (*Namespace, error) {
	return n.get(ctx, params)
}

// List fetches all namespaces matching the populated filter fields.
func (n *NamespacesClient) List(ctx context.Context, params NamespaceGet) ([]Namespace, error) {
	return n.list(ctx, params)
}

// ByName fetches a namespace by exact name.
func (n *NamespacesClient) ByName(ctx context.Context, name string) (*Namespace, error) {
	return n.selectOne(ctx, "name", name)
}

// Select fetches the namespace with the given id and wraps it in a handle.
func (n *NamespacesClient) Select(ctx context.Context, id int) (*NamespaceHandle, error) {
	namespace, err := n.collection.Select(ctx, id)
	if err != nil {
		return nil, err
	}

	return n.Handle(*namespace), nil
}

// SelectByName fetches a namespace by exact name and wraps it in a handle.
func (n *NamespacesClient) SelectByName(ctx context.Context, name string) (*NamespaceHandle, error) {
	namespace, err := n.ByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return n.Handle(*namespace), nil
}

// Handle wraps a record for permission navigation.
func (n *NamespacesClient) Handle(namespace Namespace) *NamespaceHandle {
	return &NamespaceHandle{Namespace: namespace, client: n.client}
}

// NamespaceHandle pairs a namespace record with the client it was fetched
// through.
type NamespaceHandle struct {
	Namespace

	client *AuthenticatedClient
}

// Permissions lists the per-group permission grants on the namespace.
func (h *NamespaceHandle) Permissions(ctx context.Context) ([]GroupPermission, error) {
	params := map[string]string{"namespace_id": strconv.Itoa(h.ID)}

	return listAt[GroupPermission](ctx, h.client, EndpointNamespacePermissions, params, nil)
}
