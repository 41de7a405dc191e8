package hubuum

import (
	"fmt"
	"strings"
)

// Endpoint identifies a fixed API path template. Templates may contain
// placeholders ({class_id}, {group_id}, {user_id}, {namespace_id}) that are
// substituted from URL parameters at call time.
type Endpoint int

const (
	EndpointLogin Endpoint = iota
	EndpointValidateToken
	EndpointUsers
	EndpointUserGroups
	EndpointGroups
	EndpointGroupMembers
	EndpointGroupMember
	EndpointNamespaces
	EndpointNamespacePermissions
	EndpointClasses
	EndpointObjects
	EndpointClassRelations
	EndpointObjectRelations
)

var endpointPaths = map[Endpoint]string{
	EndpointLogin:                "/api/v0/auth/login",
	EndpointValidateToken:        "/api/v0/auth/validate",
	EndpointUsers:                "/api/v1/iam/users/",
	EndpointUserGroups:           "/api/v1/iam/users/{user_id}/groups/",
	EndpointGroups:               "/api/v1/iam/groups/",
	EndpointGroupMembers:         "/api/v1/iam/groups/{group_id}/members/",
	EndpointGroupMember:          "/api/v1/iam/groups/{group_id}/members/{user_id}",
	EndpointNamespaces:           "/api/v1/namespaces/",
	EndpointNamespacePermissions: "/api/v1/namespaces/{namespace_id}/permissions/",
	EndpointClasses:              "/api/v1/classes/",
	EndpointObjects:              "/api/v1/classes/{class_id}/",
	EndpointClassRelations:       "/api/v1/relations/classes/",
	EndpointObjectRelations:      "/api/v1/relations/objects/",
}

// Path returns the endpoint's path template.
func (e Endpoint) Path() string {
	return endpointPaths[e]
}

// Complete resolves the endpoint against a base URL.
func (e Endpoint) Complete(base BaseURL) string {
	return base.JoinPath(e.Path())
}

// Substitute replaces path placeholders with the supplied URL parameters.
// Unknown parameters are ignored; unreplaced placeholders are left in place
// for the server to reject.
func (e Endpoint) Substitute(params map[string]string) string {
	path := e.Path()
	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}

	return path
}

// Pluralize derives the collection form of a resource name: a trailing "s"
// gains "es", anything else gains "s". Irregular nouns are not handled; use
// the override table in the resource schema instead.
func Pluralize(name string) string {
	if strings.HasSuffix(name, "s") {
		return name + "es"
	}

	return name + "s"
}

var endpointsByPlural = map[string]Endpoint{
	"Users":           EndpointUsers,
	"Groups":          EndpointGroups,
	"Namespaces":      EndpointNamespaces,
	"Classes":         EndpointClasses,
	"Objects":         EndpointObjects,
	"ClassRelations":  EndpointClassRelations,
	"ObjectRelations": EndpointObjectRelations,
}

// EndpointForResource resolves a resource kind name (e.g. "Class") to its
// collection endpoint via the pluralization rule. Names that do not resolve
// fail fast; this is a generation-time check, not a runtime fallback.
func EndpointForResource(name string) (Endpoint, error) {
	endpoint, ok := endpointsByPlural[Pluralize(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}

	return endpoint, nil
}
