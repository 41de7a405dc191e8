package hubuum

import (
	"io"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// RenderTable writes records as an aligned text table. Columns follow the
// kind's schema: every non-post-only field, headed by its list header when
// one is declared and its field name otherwise.
func RenderTable[R ApiResource](w io.Writer, records []R) error {
	schema := zero[R]().Schema()

	var headers []string

	var keys []string

	for _, field := range schema.Fields {
		if field.PostOnly {
			continue
		}

		header := field.ListHeader
		if header == "" {
			header = field.Name
		}

		headers = append(headers, header)
		keys = append(keys, field.Name)
	}

	table := tablewriter.NewWriter(w)
	table.Header(toAny(headers)...)

	for _, record := range records {
		row := make([]string, 0, len(keys))
		for _, key := range keys {
			row = append(row, displayValue(fieldValueByTag(record, key)))
		}

		if err := table.Append(toAny(row)...); err != nil {
			return err
		}
	}

	return table.Render()
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}

// fieldValueByTag finds the struct field carrying the given json tag. The
// match ignores tag options such as omitempty.
func fieldValueByTag(record any, tag string) any {
	value := reflect.ValueOf(record)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		return nil
	}

	structType := value.Type()
	for i := 0; i < structType.NumField(); i++ {
		name := strings.SplitN(structType.Field(i).Tag.Get("json"), ",", 2)[0]
		if name == tag {
			return value.Field(i).Interface()
		}
	}

	return nil
}
