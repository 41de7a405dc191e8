package hubuum

import (
	"fmt"
	"net/url"
	"strings"
)

// OperatorKind enumerates the closed set of filter operators understood by
// the search endpoints.
type OperatorKind int

const (
	Equals OperatorKind = iota
	IEquals
	Contains
	IContains
	StartsWith
	IStartsWith
	EndsWith
	IEndsWith
	Like
	Regex
	Gt
	Gte
	Lt
	Lte
	Between
)

var operatorTokens = map[OperatorKind]string{
	Equals:      "equals",
	IEquals:     "iequals",
	Contains:    "contains",
	IContains:   "icontains",
	StartsWith:  "startswith",
	IStartsWith: "istartswith",
	EndsWith:    "endswith",
	IEndsWith:   "iendswith",
	Like:        "like",
	Regex:       "regex",
	Gt:          "gt",
	Gte:         "gte",
	Lt:          "lt",
	Lte:         "lte",
	Between:     "between",
}

// DataType is the semantic category of a field as seen by the filter
// applicability rules.
type DataType int

const (
	TypeString DataType = iota
	TypeNumericOrDate
	TypeBoolean
	TypeArray
)

// FilterOperator pairs an operator kind with a negation flag.
type FilterOperator struct {
	Kind    OperatorKind
	Negated bool
}

// Not returns the negated form of the operator.
func (op FilterOperator) Not() FilterOperator {
	return FilterOperator{Kind: op.Kind, Negated: !op.Negated}
}

// Token returns the wire token for the operator: the lowercase operator
// name, prefixed with "not_" when negated.
func (op FilterOperator) Token() string {
	token := operatorTokens[op.Kind]
	if op.Negated {
		return "not_" + token
	}

	return token
}

// AppliesTo reports whether the operator may legally target the given data
// category. Equality is universal, comparison operators require numeric or
// date fields, pattern operators require strings, and contains applies to
// strings and arrays. This is a validation predicate; the filter builder
// does not enforce it.
func (op FilterOperator) AppliesTo(dataType DataType) bool {
	switch op.Kind {
	case Equals:
		return true
	case IEquals:
		return dataType == TypeString
	case Contains, IContains:
		return dataType == TypeString || dataType == TypeArray
	case StartsWith, IStartsWith, EndsWith, IEndsWith, Like, Regex:
		return dataType == TypeString
	case Gt, Gte, Lt, Lte, Between:
		return dataType == TypeNumericOrDate
	default:
		return false
	}
}

// ParseOperatorToken resolves a wire token back to an operator.
func ParseOperatorToken(token string) (FilterOperator, error) {
	negated := false
	if rest, found := strings.CutPrefix(token, "not_"); found {
		negated = true
		token = rest
	}

	for kind, name := range operatorTokens {
		if name == token {
			return FilterOperator{Kind: kind, Negated: negated}, nil
		}
	}

	return FilterOperator{}, fmt.Errorf("unknown filter operator %q", token)
}

// QueryFilter is a single field/operator/value triple used to narrow a GET
// query. Filters are immutable once built and are consumed exactly once
// when serialized.
type QueryFilter struct {
	Key      string
	Operator FilterOperator
	Value    string
}

// NewQueryFilter builds a filter and checks the operator against the
// field's data category. Callers that skip validation can construct the
// struct directly.
func NewQueryFilter(key string, op FilterOperator, dataType DataType, value string) (QueryFilter, error) {
	if !op.AppliesTo(dataType) {
		return QueryFilter{}, fmt.Errorf("operator %s not applicable to field %q", op.Token(), key)
	}

	return QueryFilter{Key: key, Operator: op, Value: value}, nil
}

// EncodeFilters serializes filters into a query string. Each filter becomes
// "<field>__<token>=<escaped value>"; filters join with "&" in insertion
// order.
func EncodeFilters(filters []QueryFilter) string {
	if len(filters) == 0 {
		return ""
	}

	parts := make([]string, 0, len(filters))
	for _, filter := range filters {
		parts = append(parts, fmt.Sprintf("%s__%s=%s",
			filter.Key, filter.Operator.Token(), url.QueryEscape(filter.Value)))
	}

	return strings.Join(parts, "&")
}

// ParseFilters recovers filters from a query string produced by
// EncodeFilters, preserving order.
func ParseFilters(query string) ([]QueryFilter, error) {
	if query == "" {
		return nil, nil
	}

	parts := strings.Split(query, "&")
	filters := make([]QueryFilter, 0, len(parts))

	for _, part := range parts {
		pair := strings.SplitN(part, "=", 2)
		if len(pair) != 2 {
			return nil, fmt.Errorf("malformed query fragment %q", part)
		}

		keyToken := strings.SplitN(pair[0], "__", 2)
		if len(keyToken) != 2 {
			return nil, fmt.Errorf("missing operator in query fragment %q", part)
		}

		op, err := ParseOperatorToken(keyToken[1])
		if err != nil {
			return nil, err
		}

		value, err := url.QueryUnescape(pair[1])
		if err != nil {
			return nil, fmt.Errorf("unescaping query value %q: %w", pair[1], err)
		}

		filters = append(filters, QueryFilter{Key: keyToken[0], Operator: op, Value: value})
	}

	return filters, nil
}

// FilterTuple is the raw (field, operator, value) triple accumulated by the
// fluent builder before conversion into query filters.
type FilterTuple struct {
	Field    string
	Operator FilterOperator
	Value    string
}

// buildQueryFilters is the 1:1 tuple-to-filter mapping every resource kind
// uses for BuildParams. No merging or deduplication happens here.
func buildQueryFilters(tuples []FilterTuple) []QueryFilter {
	filters := make([]QueryFilter, 0, len(tuples))
	for _, tuple := range tuples {
		filters = append(filters, QueryFilter{
			Key:      tuple.Field,
			Operator: tuple.Operator,
			Value:    tuple.Value,
		})
	}

	return filters
}
