package hubuum

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// Group is the full record of a group.
type Group struct {
	ID          int       `json:"id"`
	Groupname   string    `json:"groupname"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GroupGet narrows a group search.
type GroupGet struct {
	ID          *int       `json:"id,omitempty"`
	Groupname   *string    `json:"groupname,omitempty"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// GroupPost creates a group.
type GroupPost struct {
	Groupname   string `json:"groupname"`
	Description string `json:"description"`
}

// GroupPatch updates a group.
type GroupPatch struct {
	Groupname   *string `json:"groupname,omitempty"`
	Description *string `json:"description,omitempty"`
}

var groupSchema = Schema{
	Name:      "Group",
	NameField: "groupname",
	Endpoint:  EndpointGroups,
	Fields: []Field{
		{Name: "id", Type: FieldInt, ReadOnly: true},
		{Name: "groupname", Type: FieldString, ListHeader: "Name"},
		{Name: "description", Type: FieldString, ListHeader: "Description"},
		{Name: "created_at", Type: FieldTime, ReadOnly: true, ListHeader: "Created"},
		{Name: "updated_at", Type: FieldTime, ReadOnly: true, ListHeader: "Updated"},
	},
}

func (Group) Endpoint() Endpoint { return EndpointGroups }
func (Group) Schema() Schema     { return groupSchema }
func (Group) NameField() string  { return "groupname" }
func (g Group) GetID() int       { return g.ID }

func (Group) BuildParams(tuples []FilterTuple) []QueryFilter {
	return buildQueryFilters(tuples)
}

func (g Group) String() string { return g.Groupname }

// GroupsClient operates on the group collection.
type GroupsClient struct {
	collection[Group]
}

// Groups returns the group collection client.
func (c *AuthenticatedClient) Groups() *GroupsClient {
	return &GroupsClient{collection[Group]{client: c}}
}

// Create adds a group.
func (g *GroupsClient) Create(ctx context.Context, params GroupPost) (*Group, error) {
	return create[Group](ctx, g.client, nil, params)
}

// Update patches the group with the given id.
func (g *GroupsClient) Update(ctx context.Context, id int, params GroupPatch) (*Group, error) {
	return update[Group](ctx, g.client, id, nil, params)
}

// Get fetches the single group matching the populated filter fields.
func (g *GroupsClient) Get(ctx context.Context, params GroupGet) (*Group, error) {
	return g.get(ctx, params)
}

// List fetches all groups matching the populated filter fields.
func (g *GroupsClient) List(ctx context.Context, params GroupGet) ([]Group, error) {
	return g.list(ctx, params)
}

// ByName fetches a group by exact groupname.
func (g *GroupsClient) ByName(ctx context.Context, groupname string) (*Group, error) {
	return g.selectOne(ctx, "groupname", groupname)
}

// Select fetches the group with the given id and wraps it in a handle.
func (g *GroupsClient) Select(ctx context.Context, id int) (*GroupHandle, error) {
	group, err := g.collection.Select(ctx, id)
	if err != nil {
		return nil, err
	}

	return g.Handle(*group), nil
}

// SelectByName fetches a group by exact groupname and wraps it in a handle.
func (g *GroupsClient) SelectByName(ctx context.Context, groupname string) (*GroupHandle, error) {
	group, err := g.ByName(ctx, groupname)
	if err != nil {
		return nil, err
	}

	return g.Handle(*group), nil
}

// Handle wraps a record for membership navigation.
func (g *GroupsClient) Handle(group Group) *GroupHandle {
	return &GroupHandle{Group: group, client: g.client}
}

// GroupHandle pairs a group record with the client it was fetched through.
type GroupHandle struct {
	Group

	client *AuthenticatedClient
}

// Members lists the users belonging to the group.
func (h *GroupHandle) Members(ctx context.Context) ([]User, error) {
	params := map[string]string{"group_id": strconv.Itoa(h.ID)}

	return listAt[User](ctx, h.client, EndpointGroupMembers, params, nil)
}

// AddMember adds a user to the group.
func (h *GroupHandle) AddMember(ctx context.Context, userID int) error {
	_, err := h.client.Do(ctx, http.MethodPost, EndpointGroupMember, h.memberParams(userID), nil, nil)

	return err
}

// RemoveMember removes a user from the group. The server answers an empty
// body on success; the dispatcher rejects anything else.
func (h *GroupHandle) RemoveMember(ctx context.Context, userID int) error {
	_, err := h.client.Do(ctx, http.MethodDelete, EndpointGroupMember, h.memberParams(userID), nil, nil)

	return err
}

func (h *GroupHandle) memberParams(userID int) map[string]string {
	return map[string]string{
		"group_id": strconv.Itoa(h.ID),
		"user_id":  strconv.Itoa(userID),
	}
}
