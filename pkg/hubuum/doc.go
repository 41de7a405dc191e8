// Package hubuum is a typed client for the Hubuum REST API.
//
// # Overview
//
// The package covers the IAM resources (users, groups), namespaces with
// per-group permissions, classes and their objects, and the relations
// between classes and between objects. Each resource kind comes as a
// quadruple of shapes: the full record (User), search parameters (UserGet),
// creation payload (UserPost) and update payload (UserPatch). The shapes
// are coordinated through the kind's Schema, which also drives tabular
// rendering.
//
// # Authentication
//
// A client starts unauthenticated and can only log in. Both login paths
// return a new AuthenticatedClient carrying the bearer token:
//
//	base, err := hubuum.ParseBaseURL("https://hubuum.example.com")
//	if err != nil { log.Fatal(err) }
//
//	client, err := hubuum.New(base).Login(ctx, hubuum.Credentials{
//	  Username: "admin",
//	  Password: "secret",
//	})
//	if err != nil { log.Fatal(err) }
//
// A pre-issued token is validated before use:
//
//	client, err := hubuum.New(base).LoginWithToken(ctx, hubuum.Token{Token: token})
//
// # Searching
//
// Collections expose a fluent filter builder. Filters serialize as
// field__operator query parameters in the order they were added:
//
//	classes, err := client.Classes().Find().
//	  AddFilter("name", hubuum.FilterOperator{Kind: hubuum.Contains}, "switch").
//	  Execute(ctx)
//
// ExecuteExpectingSingleResult requires exactly one match and reports an
// empty or ambiguous result set as an error.
//
// # Navigation
//
// Handles wrap fetched records for relationship traversal: a user's groups,
// a group's members, a namespace's permission grants, a class's objects.
//
//	group, err := client.Groups().ByName(ctx, "admins")
//	if err != nil { log.Fatal(err) }
//
//	members, err := client.Groups().Handle(*group).Members(ctx)
package hubuum
