package hubuum_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hubuum-io/hubuum-go/pkg/hubuum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*httptest.Server, *hubuum.Client) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base, err := hubuum.ParseBaseURL(server.URL)
	require.NoError(t, err)

	return server, hubuum.New(base)
}

// loginHandler accepts admin/secret on the login endpoint and requires the
// issued token on everything else, delegating to next.
func loginHandler(t *testing.T, token string, next http.HandlerFunc) http.HandlerFunc {
	t.Helper()

	return func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/api/v0/auth/login" {
			var credentials hubuum.Credentials

			require.NoError(t, json.NewDecoder(request.Body).Decode(&credentials))

			if credentials.Username != "admin" || credentials.Password != "secret" {
				writer.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(writer).Encode(map[string]string{"message": "bad credentials"})

				return
			}

			_ = json.NewEncoder(writer).Encode(hubuum.Token{Token: token})

			return
		}

		if request.Header.Get("Authorization") != "Bearer "+token {
			writer.WriteHeader(http.StatusUnauthorized)

			return
		}

		next(writer, request)
	}
}

func login(t *testing.T, client *hubuum.Client) *hubuum.AuthenticatedClient {
	t.Helper()

	authed, err := client.Login(context.Background(), hubuum.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	return authed
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "issued-token", func(http.ResponseWriter, *http.Request) {}))

	authed := login(t, client)
	assert.Equal(t, "issued-token", authed.Token())
}

func TestClient_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "issued-token", func(http.ResponseWriter, *http.Request) {}))

	_, err := client.Login(context.Background(), hubuum.Credentials{Username: "admin", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, hubuum.IsHTTPStatus(err, http.StatusUnauthorized))
	assert.Contains(t, err.Error(), "bad credentials")
}

func TestClient_LoginWithToken(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, "/api/v0/auth/validate", request.URL.Path)

		if request.Header.Get("Authorization") == "Bearer good-token" {
			writer.WriteHeader(http.StatusOK)
		} else {
			writer.WriteHeader(http.StatusUnauthorized)
		}
	}))

	authed, err := client.LoginWithToken(context.Background(), hubuum.Token{Token: "good-token"})
	require.NoError(t, err)
	assert.Equal(t, "good-token", authed.Token())

	_, err = client.LoginWithToken(context.Background(), hubuum.Token{Token: "bad-token"})
	assert.True(t, errors.Is(err, hubuum.ErrInvalidToken))
}

func TestClient_FilteredSearch(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/classes/", request.URL.Path)
		assert.Equal(t, "name__equals=Servers", request.URL.RawQuery)

		_ = json.NewEncoder(writer).Encode([]hubuum.Class{{ID: 1, Name: "Servers"}})
	}))

	authed := login(t, client)

	classes, err := authed.Classes().Find().AddFilterNameExact("Servers").Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Servers", classes[0].Name)
}

func TestClient_FilterOrderOnTheWire(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "username__icontains=ali&id__not_gt=10", request.URL.RawQuery)
		_ = json.NewEncoder(writer).Encode([]hubuum.User{})
	}))

	authed := login(t, client)

	_, err := authed.Users().Find().
		AddFilter("username", hubuum.FilterOperator{Kind: hubuum.IContains}, "ali").
		AddFilter("id", hubuum.FilterOperator{Kind: hubuum.Gt, Negated: true}, 10).
		Execute(context.Background())
	require.NoError(t, err)
}

func TestClient_ExecuteExpectingSingleResult(t *testing.T) {
	t.Parallel()

	results := []hubuum.User{}

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		_ = json.NewEncoder(writer).Encode(results)
	}))

	authed := login(t, client)
	ctx := context.Background()

	_, err := authed.Users().Find().AddFilterNameExact("alice").ExecuteExpectingSingleResult(ctx)
	assert.True(t, hubuum.IsNotFound(err))

	results = []hubuum.User{{ID: 1, Username: "alice"}}

	user, err := authed.Users().Find().AddFilterNameExact("alice").ExecuteExpectingSingleResult(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	results = []hubuum.User{{ID: 1}, {ID: 2}}

	_, err = authed.Users().Find().AddFilterNameExact("alice").ExecuteExpectingSingleResult(ctx)
	assert.True(t, hubuum.IsTooManyResults(err))

	var tooMany *hubuum.TooManyResultsError

	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 2, tooMany.Count)
	assert.Equal(t, "User", tooMany.Resource)
}

func TestClient_Create(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/api/v1/iam/groups/", request.URL.Path)

		var params hubuum.GroupPost

		require.NoError(t, json.NewDecoder(request.Body).Decode(&params))
		assert.Equal(t, "admins", params.Groupname)

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(hubuum.Group{ID: 5, Groupname: params.Groupname, Description: params.Description})
	}))

	authed := login(t, client)

	group, err := authed.Groups().Create(context.Background(), hubuum.GroupPost{
		Groupname:   "admins",
		Description: "administrators",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, group.ID)
}

func TestClient_Update(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPatch, request.Method)
		assert.Equal(t, "/api/v1/iam/groups/5", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(hubuum.Group{ID: 5, Groupname: "admins", Description: "updated"})
	}))

	authed := login(t, client)

	description := "updated"

	group, err := authed.Groups().Update(context.Background(), 5, hubuum.GroupPatch{Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "updated", group.Description)
}

func TestClient_Update_RequiresID(t *testing.T) {
	t.Parallel()

	// Any request reaching the server is a failure.
	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/v0/auth/login" {
			t.Errorf("unexpected request to %s", request.URL.Path)
		}
	}))

	authed := login(t, client)

	_, err := authed.Groups().Update(context.Background(), 0, hubuum.GroupPatch{})
	assert.True(t, errors.Is(err, hubuum.ErrMissingIdentifier))
}

func TestClient_Delete(t *testing.T) {
	t.Parallel()

	deleteBody := ""

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)
		assert.Equal(t, "/api/v1/namespaces/9", request.URL.Path)

		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte(deleteBody))
	}))

	authed := login(t, client)
	ctx := context.Background()

	require.NoError(t, authed.Namespaces().Delete(ctx, 9))

	// A body on a successful DELETE violates the contract.
	deleteBody = `{"unexpected": true}`

	err := authed.Namespaces().Delete(ctx, 9)

	var deserializationErr *hubuum.DeserializationError

	require.ErrorAs(t, err, &deserializationErr)
	assert.Contains(t, deserializationErr.Raw, "unexpected")
}

func TestClient_Delete_RequiresID(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "tok", func(http.ResponseWriter, *http.Request) {}))

	authed := login(t, client)

	err := authed.Namespaces().Delete(context.Background(), -1)
	assert.True(t, errors.Is(err, hubuum.ErrMissingIdentifier))
}

func TestClient_Select(t *testing.T) {
	t.Parallel()

	results := []hubuum.Group{{ID: 3, Groupname: "admins"}}

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/iam/groups/", request.URL.Path)
		assert.Equal(t, "id__equals=3", request.URL.RawQuery)

		_ = json.NewEncoder(writer).Encode(results)
	}))

	authed := login(t, client)
	ctx := context.Background()

	handle, err := authed.Groups().Select(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "admins", handle.Groupname)

	results = []hubuum.Group{}

	_, err = authed.Groups().Select(ctx, 3)
	assert.True(t, hubuum.IsNotFound(err))
}

func TestClient_SelectByName(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/classes/", request.URL.Path)
		assert.Equal(t, "name__equals=Host", request.URL.RawQuery)

		_ = json.NewEncoder(writer).Encode([]hubuum.Class{{ID: 2, Name: "Host"}})
	}))

	authed := login(t, client)

	handle, err := authed.Classes().SelectByName(context.Background(), "Host")
	require.NoError(t, err)
	assert.Equal(t, 2, handle.ID)

	// The handle navigates straight into the class's objects.
	assert.Equal(t, 2, handle.Objects().ClassID())
}

func TestClient_SelectByID_Objects(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/classes/7/", request.URL.Path)
		assert.Equal(t, "id__equals=12", request.URL.RawQuery)

		_ = json.NewEncoder(writer).Encode([]hubuum.Object{{ID: 12, Name: "web01", HubuumClassID: 7}})
	}))

	authed := login(t, client)

	object, err := authed.Objects(7).Select(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "web01", object.Name)
}

func TestClient_Do_PatchRequiresID(t *testing.T) {
	t.Parallel()

	// Any request past login reaching the server is a failure.
	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/v0/auth/login" {
			t.Errorf("unexpected request to %s", request.URL.Path)
		}
	}))

	authed := login(t, client)

	_, err := authed.Do(context.Background(), http.MethodPatch, hubuum.EndpointGroups, nil, nil, hubuum.GroupPatch{})
	assert.True(t, errors.Is(err, hubuum.ErrMissingIdentifier))
}

func TestClient_ObjectsAreClassScoped(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/classes/7/", request.URL.Path)
		_ = json.NewEncoder(writer).Encode([]hubuum.Object{{ID: 1, Name: "web01", HubuumClassID: 7}})
	}))

	authed := login(t, client)

	objects, err := authed.Objects(7).All(context.Background())
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "web01", objects[0].Name)
}

func TestClient_GetByEqualityParams(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/iam/users/", request.URL.Path)
		assert.Equal(t, "username__equals=alice", request.URL.RawQuery)

		_ = json.NewEncoder(writer).Encode([]hubuum.User{{ID: 1, Username: "alice"}})
	}))

	authed := login(t, client)

	username := "alice"

	user, err := authed.Users().Get(context.Background(), hubuum.UserGet{Username: &username})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
}

func TestClient_GroupMembership(t *testing.T) {
	t.Parallel()

	var lastMethod, lastPath string

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		lastMethod = request.Method
		lastPath = request.URL.Path

		switch request.Method {
		case http.MethodGet:
			_ = json.NewEncoder(writer).Encode([]hubuum.User{{ID: 7, Username: "alice"}})
		default:
			writer.WriteHeader(http.StatusOK)
		}
	}))

	authed := login(t, client)
	ctx := context.Background()

	handle := authed.Groups().Handle(hubuum.Group{ID: 3, Groupname: "admins"})

	members, err := handle.Members(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "/api/v1/iam/groups/3/members/", lastPath)

	require.NoError(t, handle.AddMember(ctx, 7))
	assert.Equal(t, http.MethodPost, lastMethod)
	assert.Equal(t, "/api/v1/iam/groups/3/members/7", lastPath)

	require.NoError(t, handle.RemoveMember(ctx, 7))
	assert.Equal(t, http.MethodDelete, lastMethod)
	assert.Equal(t, "/api/v1/iam/groups/3/members/7", lastPath)
}

func TestClient_RemoveMember_RejectsResponseBody(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"removed": true}`))
	}))

	authed := login(t, client)

	err := authed.Groups().Handle(hubuum.Group{ID: 3}).RemoveMember(context.Background(), 7)

	var deserializationErr *hubuum.DeserializationError

	require.ErrorAs(t, err, &deserializationErr)
	assert.Contains(t, deserializationErr.Raw, "removed")
}

func TestClient_UserGroups(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/iam/users/7/groups/", request.URL.Path)
		_ = json.NewEncoder(writer).Encode([]hubuum.Group{{ID: 3, Groupname: "admins"}})
	}))

	authed := login(t, client)

	groups, err := authed.Users().Handle(hubuum.User{ID: 7}).Groups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "admins", groups[0].Groupname)
}

func TestClient_NamespacePermissions(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/namespaces/4/permissions/", request.URL.Path)

		_ = json.NewEncoder(writer).Encode([]hubuum.GroupPermission{
			{
				Group:      hubuum.Group{ID: 3, Groupname: "admins"},
				Permission: hubuum.Permission{NamespaceID: 4, GroupID: 3, HasReadNamespace: true},
			},
		})
	}))

	authed := login(t, client)

	grants, err := authed.Namespaces().Handle(hubuum.Namespace{ID: 4}).Permissions(context.Background())
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.True(t, grants[0].Permission.HasReadNamespace)
	assert.Equal(t, "admins", grants[0].Group.Groupname)
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	t.Parallel()

	body := `{"message": "namespace is in use"}`

	_, client := newTestClient(t, loginHandler(t, "tok", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusConflict)
		_, _ = writer.Write([]byte(body))
	}))

	authed := login(t, client)
	ctx := context.Background()

	err := authed.Namespaces().Delete(ctx, 4)

	var httpErr *hubuum.HTTPError

	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "namespace is in use", httpErr.Message)

	// Structured body without a message field.
	body = `{"detail": "something"}`
	err = authed.Namespaces().Delete(ctx, 4)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Error without message.", httpErr.Message)

	// Plain text passes through.
	body = `gateway exploded`
	err = authed.Namespaces().Delete(ctx, 4)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "gateway exploded", httpErr.Message)
}

func TestOneOrErr(t *testing.T) {
	t.Parallel()

	one, err := hubuum.OneOrErr([]hubuum.Class{{ID: 1, Name: "Host"}})
	require.NoError(t, err)
	assert.Equal(t, "Host", one.Name)

	_, err = hubuum.OneOrErr([]hubuum.Class{})
	assert.True(t, hubuum.IsNotFound(err))
	assert.Contains(t, err.Error(), "Class not found")

	_, err = hubuum.OneOrErr([]hubuum.Class{{ID: 1}, {ID: 2}})
	assert.True(t, hubuum.IsTooManyResults(err))
}
