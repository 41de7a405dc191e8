package hubuum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/hubuum-io/hubuum-go/internal/transport"
)

// Logger is the structured logging interface used by the client and the
// transport. The zero value of the library logs nothing.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

type options struct {
	logger    Logger
	debug     bool
	userAgent string
	timeout   time.Duration
}

// Option configures a client at construction time.
type Option func(*options)

// WithLogger installs a structured logger.
func WithLogger(logger Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(o *options) { o.debug = debug }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *options) { o.userAgent = userAgent }
}

// WithTimeout sets a default per-request timeout on the transport. Context
// deadlines remain the preferred mechanism.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

func (o *options) transportOptions() []transport.Option {
	var opts []transport.Option

	if o.logger != nil {
		opts = append(opts, transport.WithLogger(o.logger))
	}

	if o.debug {
		opts = append(opts, transport.WithDebug(true))
	}

	if o.userAgent != "" {
		opts = append(opts, transport.WithUserAgent(o.userAgent))
	}

	if o.timeout > 0 {
		opts = append(opts, transport.WithTimeout(o.timeout))
	}

	return opts
}

// Client is an unauthenticated API client. Login is the only path to the
// privileged operations on AuthenticatedClient.
type Client struct {
	http *transport.Client
	base BaseURL
	opts options
}

// New creates an unauthenticated client for the given base URL.
func New(base BaseURL, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		http: transport.NewClient(base.String(), nil, o.transportOptions()...),
		base: base,
		opts: o,
	}
}

// Login authenticates with username/password credentials. On success it
// returns a new authenticated client; the receiver should be discarded.
func (c *Client) Login(ctx context.Context, credentials Credentials) (*AuthenticatedClient, error) {
	body, _, err := send(ctx, c.http, http.MethodPost, EndpointLogin.Path(), credentials)
	if err != nil {
		return nil, err
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, &DeserializationError{Raw: string(body), Err: err}
	}

	return c.authenticated(token.Token), nil
}

// LoginWithToken validates a pre-issued token against the validation
// endpoint. A non-success response means the token was rejected, which is
// reported as ErrInvalidToken rather than an HTTP error.
func (c *Client) LoginWithToken(ctx context.Context, token Token) (*AuthenticatedClient, error) {
	resp, err := c.http.Do(ctx, &transport.Request{
		Method:  http.MethodGet,
		Path:    EndpointValidateToken.Path(),
		Headers: map[string]string{"Authorization": "Bearer " + token.Token},
	})
	if err != nil {
		return nil, fmt.Errorf("validating token: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrInvalidToken
	}

	return c.authenticated(token.Token), nil
}

func (c *Client) authenticated(token string) *AuthenticatedClient {
	return &AuthenticatedClient{
		http:  transport.NewClient(c.base.String(), transport.StaticToken(token), c.opts.transportOptions()...),
		base:  c.base,
		token: token,
	}
}

// AuthenticatedClient is the post-login client. It is immutable and cheap
// to share; concurrent read operations on one value are safe.
type AuthenticatedClient struct {
	http  *transport.Client
	base  BaseURL
	token string
}

// Token returns the bearer token the client authenticates with.
func (c *AuthenticatedClient) Token() string {
	return c.token
}

// BaseURL returns the client's base address.
func (c *AuthenticatedClient) BaseURL() BaseURL {
	return c.base
}

// Do issues a request against an endpoint with path placeholders
// substituted from urlParams. For GET the serialized filters are appended.
// For PATCH and DELETE an "id" entry in urlParams names the target record
// and is appended to the path; PATCH without one is a hard error raised
// before any network I/O, and a DELETE answered with a non-empty body is a
// contract violation. It returns the raw success body; non-2xx responses
// become HTTPError. Verbs other than GET, POST, PATCH and DELETE are
// rejected.
func (c *AuthenticatedClient) Do(ctx context.Context, method string, endpoint Endpoint, urlParams map[string]string, filters []QueryFilter, body any) ([]byte, error) {
	path := endpoint.Substitute(urlParams)

	switch method {
	case http.MethodGet:
		if query := EncodeFilters(filters); query != "" {
			path += "?" + query
		}
	case http.MethodPatch, http.MethodDelete:
		if id, ok := urlParams["id"]; ok {
			if n, err := strconv.Atoi(id); err != nil || n <= 0 {
				return nil, fmt.Errorf("%w: %s %s", ErrMissingIdentifier, method, endpoint.Path())
			}

			path += id
		} else if method == http.MethodPatch {
			return nil, fmt.Errorf("%w: PATCH %s", ErrMissingIdentifier, endpoint.Path())
		}
	}

	raw, _, err := send(ctx, c.http, method, path, body)
	if err != nil {
		return nil, err
	}

	if method == http.MethodDelete && len(bytes.TrimSpace(raw)) > 0 {
		return nil, &DeserializationError{Raw: string(raw)}
	}

	return raw, nil
}

// send dispatches one request and classifies the response. Transport
// failures and non-success statuses are both reported as errors; the raw
// body and status are returned for successful responses.
func send(ctx context.Context, t *transport.Client, method, path string, body any) ([]byte, int, error) {
	var (
		resp *transport.Response
		err  error
	)

	switch method {
	case http.MethodGet:
		resp, err = t.Get(ctx, path, nil)
	case http.MethodPost:
		resp, err = t.Post(ctx, path, body)
	case http.MethodPatch:
		resp, err = t.Patch(ctx, path, body)
	case http.MethodDelete:
		resp, err = t.Delete(ctx, path)
	default:
		return nil, 0, &UnsupportedMethodError{Method: method}
	}

	if err != nil {
		return nil, 0, fmt.Errorf("sending request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &HTTPError{
			Status:  resp.StatusCode,
			Message: extractMessage(resp.Body),
		}
	}

	return resp.Body, resp.StatusCode, nil
}

// extractMessage pulls the "message" field from a structured error body,
// falling back to the raw text when the body is not JSON.
func extractMessage(body []byte) string {
	var structured map[string]json.RawMessage
	if err := json.Unmarshal(body, &structured); err == nil {
		if raw, ok := structured["message"]; ok {
			var message string
			if err := json.Unmarshal(raw, &message); err == nil {
				return message
			}
		}

		return "Error without message."
	}

	return string(body)
}

// listAt runs a filtered GET against an arbitrary endpoint and decodes the
// result list. Used for relationship navigation, where the endpoint is not
// the element kind's own collection.
func listAt[T any](ctx context.Context, c *AuthenticatedClient, endpoint Endpoint, urlParams map[string]string, filters []QueryFilter) ([]T, error) {
	body, err := c.Do(ctx, http.MethodGet, endpoint, urlParams, filters, nil)

	return decodeSearch[T](body, err)
}

func decodeSearch[R any](body []byte, err error) ([]R, error) {
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return []R{}, nil
	}

	var out []R
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &DeserializationError{Raw: string(body), Err: err}
	}

	return out, nil
}

// create POSTs a post-payload and decodes the created record.
func create[R ApiResource, P any](ctx context.Context, c *AuthenticatedClient, urlParams map[string]string, params P) (*R, error) {
	path := zero[R]().Endpoint().Substitute(urlParams)

	body, _, err := send(ctx, c.http, http.MethodPost, path, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[R](body)
}

// update PATCHes a patch-payload at the record's id. The dispatcher rejects
// a missing id before any network I/O.
func update[R ApiResource, P any](ctx context.Context, c *AuthenticatedClient, id int, urlParams map[string]string, params P) (*R, error) {
	body, err := c.Do(ctx, http.MethodPatch, zero[R]().Endpoint(), withID(urlParams, id), nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[R](body)
}

// remove DELETEs the record with the given id. The dispatcher enforces the
// empty-body contract on the response.
func remove[R ApiResource](ctx context.Context, c *AuthenticatedClient, id int, urlParams map[string]string) error {
	_, err := c.Do(ctx, http.MethodDelete, zero[R]().Endpoint(), withID(urlParams, id), nil, nil)

	return err
}

// withID merges the target record id into the url parameters.
func withID(urlParams map[string]string, id int) map[string]string {
	merged := map[string]string{"id": strconv.Itoa(id)}
	for key, value := range urlParams {
		merged[key] = value
	}

	return merged
}

func decodeOne[R any](body []byte) (*R, error) {
	var out R
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &DeserializationError{Raw: string(body), Err: err}
	}

	return &out, nil
}

func zero[R ApiResource]() R {
	var r R

	return r
}

// OneOrErr unwraps a single-element result set. An empty set is a not-found
// error naming the element type; more than one element is a too-many error
// reporting the count.
func OneOrErr[T any](items []T) (*T, error) {
	name := reflect.TypeOf((*T)(nil)).Elem().Name()

	switch len(items) {
	case 1:
		return &items[0], nil
	case 0:
		return nil, &NotFoundError{Resource: name}
	default:
		return nil, &TooManyResultsError{Resource: name, Count: len(items)}
	}
}

// FilterBuilder accumulates filter tuples for one resource kind and, on
// execution, converts them through the kind's BuildParams and issues a
// search.
type FilterBuilder[R ApiResource] struct {
	client    *AuthenticatedClient
	urlParams map[string]string
	tuples    []FilterTuple
}

func newFilterBuilder[R ApiResource](client *AuthenticatedClient, urlParams map[string]string) *FilterBuilder[R] {
	return &FilterBuilder[R]{client: client, urlParams: urlParams}
}

// AddFilter appends a (field, operator, value) tuple.
func (b *FilterBuilder[R]) AddFilter(field string, op FilterOperator, value any) *FilterBuilder[R] {
	b.tuples = append(b.tuples, FilterTuple{
		Field:    field,
		Operator: op,
		Value:    fmt.Sprintf("%v", value),
	})

	return b
}

// AddFilterEquals appends a non-negated equality filter.
func (b *FilterBuilder[R]) AddFilterEquals(field string, value any) *FilterBuilder[R] {
	return b.AddFilter(field, FilterOperator{Kind: Equals}, value)
}

// AddFilterID filters on the id field.
func (b *FilterBuilder[R]) AddFilterID(value any) *FilterBuilder[R] {
	return b.AddFilterEquals("id", value)
}

// AddFilterNameExact filters on the kind's name field, which differs per
// kind (users match on username, groups on groupname).
func (b *FilterBuilder[R]) AddFilterNameExact(value any) *FilterBuilder[R] {
	return b.AddFilterEquals(zero[R]().NameField(), value)
}

// Execute runs the accumulated filters as a search.
func (b *FilterBuilder[R]) Execute(ctx context.Context) ([]R, error) {
	filters := zero[R]().BuildParams(b.tuples)

	body, err := b.client.Do(ctx, http.MethodGet, zero[R]().Endpoint(), b.urlParams, filters, nil)

	return decodeSearch[R](body, err)
}

// ExecuteExpectingSingleResult runs the search and requires exactly one
// match.
func (b *FilterBuilder[R]) ExecuteExpectingSingleResult(ctx context.Context) (*R, error) {
	results, err := b.Execute(ctx)
	if err != nil {
		return nil, err
	}

	return OneOrErr(results)
}

// equalityFilters converts a get-params value into equality filters, one
// per populated field, in declaration order.
func equalityFilters(params any) []QueryFilter {
	value := reflect.ValueOf(params)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		return nil
	}

	var filters []QueryFilter

	structType := value.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		key := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if key == "" || key == "-" {
			continue
		}

		fieldValue := value.Field(i)
		if fieldValue.Kind() == reflect.Pointer {
			if fieldValue.IsNil() {
				continue
			}

			fieldValue = fieldValue.Elem()
		} else if fieldValue.IsZero() {
			continue
		}

		filters = append(filters, QueryFilter{
			Key:      key,
			Operator: FilterOperator{Kind: Equals},
			Value:    formatFilterValue(fieldValue.Interface()),
		})
	}

	return filters
}

func formatFilterValue(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case json.RawMessage:
		return string(v)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// collection is the shared behavior of the per-resource collection clients.
type collection[R ApiResource] struct {
	client    *AuthenticatedClient
	urlParams map[string]string
}

// Find starts a fluent filtered query.
func (c collection[R]) Find() *FilterBuilder[R] {
	return newFilterBuilder[R](c.client, c.urlParams)
}

// All lists the collection without filters.
func (c collection[R]) All(ctx context.Context) ([]R, error) {
	body, err := c.client.Do(ctx, http.MethodGet, zero[R]().Endpoint(), c.urlParams, nil, nil)

	return decodeSearch[R](body, err)
}

// Delete removes the record with the given id.
func (c collection[R]) Delete(ctx context.Context, id int) error {
	return remove[R](ctx, c.client, id, c.urlParams)
}

// Select fetches the single record with the given id. Collection clients
// with relationship navigation shadow this with a handle-returning variant.
func (c collection[R]) Select(ctx context.Context, id int) (*R, error) {
	return c.Find().AddFilterID(id).ExecuteExpectingSingleResult(ctx)
}

// SelectByName fetches the single record whose name field matches exactly.
func (c collection[R]) SelectByName(ctx context.Context, name string) (*R, error) {
	return c.selectOne(ctx, zero[R]().NameField(), name)
}

// selectOne fetches the single record matching field == value.
func (c collection[R]) selectOne(ctx context.Context, field, value string) (*R, error) {
	return c.Find().AddFilterEquals(field, value).ExecuteExpectingSingleResult(ctx)
}

// list searches with equality filters derived from the populated fields of
// a get-params value, one filter per field, in declaration order.
func (c collection[R]) list(ctx context.Context, params any) ([]R, error) {
	body, err := c.client.Do(ctx, http.MethodGet, zero[R]().Endpoint(), c.urlParams, equalityFilters(params), nil)

	return decodeSearch[R](body, err)
}

// get runs list and requires exactly one match.
func (c collection[R]) get(ctx context.Context, params any) (*R, error) {
	items, err := c.list(ctx, params)
	if err != nil {
		return nil, err
	}

	return OneOrErr(items)
}
