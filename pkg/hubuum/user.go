package hubuum

import (
	"context"
	"strconv"
	"time"
)

// User is the full record of a user account. Passwords are write-only and
// never appear here.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserGet narrows a user search. Every populated field becomes an equality
// filter.
type UserGet struct {
	ID        *int       `json:"id,omitempty"`
	Username  *string    `json:"username,omitempty"`
	Email     *string    `json:"email,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// UserPost creates a user. The password is accepted here and nowhere else.
type UserPost struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email,omitempty"`
}

// UserPatch updates a user. Unset fields are left untouched.
type UserPatch struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

var userSchema = Schema{
	Name:      "User",
	NameField: "username",
	Endpoint:  EndpointUsers,
	Fields: []Field{
		{Name: "id", Type: FieldInt, ReadOnly: true},
		{Name: "username", Type: FieldString},
		{Name: "password", Type: FieldString, PostOnly: true},
		{Name: "email", Type: FieldString, Optional: true},
		{Name: "created_at", Type: FieldTime, ReadOnly: true, ListHeader: "Created"},
		{Name: "updated_at", Type: FieldTime, ReadOnly: true, ListHeader: "Updated"},
	},
}

func (User) Endpoint() Endpoint { return EndpointUsers }
func (User) Schema() Schema     { return userSchema }
func (User) NameField() string  { return "username" }
func (u User) GetID() int       { return u.ID }

func (User) BuildParams(tuples []FilterTuple) []QueryFilter {
	return buildQueryFilters(tuples)
}

func (u User) String() string { return u.Username }

// UsersClient operates on the user collection.
type UsersClient struct {
	collection[User]
}

// Users returns the user collection client.
func (c *AuthenticatedClient) Users() *UsersClient {
	return &UsersClient{collection[User]{client: c}}
}

// Create adds a user account.
func (u *UsersClient) Create(ctx context.Context, params UserPost) (*User, error) {
	return create[User](ctx, u.client, nil, params)
}

// Update patches the user with the given id.
func (u *UsersClient) Update(ctx context.Context, id int, params UserPatch) (*User, error) {
	return update[User](ctx, u.client, id, nil, params)
}

// Get fetches the single user matching the populated filter fields.
func (u *UsersClient) Get(ctx context.Context, params UserGet) (*User, error) {
	return u.get(ctx, params)
}

// List fetches all users matching the populated filter fields.
func (u *UsersClient) List(ctx context.Context, params UserGet) ([]User, error) {
	return u.list(ctx, params)
}

// ByUsername fetches a user by exact username.
func (u *UsersClient) ByUsername(ctx context.Context, username string) (*User, error) {
	return u.selectOne(ctx, "username", username)
}

// Select fetches the user with the given id and wraps it in a handle.
func (u *UsersClient) Select(ctx context.Context, id int) (*UserHandle, error) {
	user, err := u.collection.Select(ctx, id)
	if err != nil {
		return nil, err
	}

	return u.Handle(*user), nil
}

// SelectByName fetches a user by exact username and wraps it in a handle.
func (u *UsersClient) SelectByName(ctx context.Context, username string) (*UserHandle, error) {
	user, err := u.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return u.Handle(*user), nil
}

// Handle wraps a record for relationship navigation.
func (u *UsersClient) Handle(user User) *UserHandle {
	return &UserHandle{User: user, client: u.client}
}

// UserHandle pairs a user record with the client it was fetched through.
type UserHandle struct {
	User

	client *AuthenticatedClient
}

// Groups lists the groups the user is a member of.
func (h *UserHandle) Groups(ctx context.Context) ([]Group, error) {
	params := map[string]string{"user_id": strconv.Itoa(h.ID)}

	return listAt[Group](ctx, h.client, EndpointUserGroups, params, nil)
}
