package poller

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/srediag/acc-telemetry/pkg/acc"
)

// writeDump appends a channel listing in key order:
//
//	---------------GRAPHICS INFO---------------
//	flag : Green
//	tyre pressure : 27.5 , 27.5 , 27.1 , 27.1
func writeDump(buf *bytebufferpool.ByteBuffer, ch acc.Channel, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	_, _ = fmt.Fprintf(buf, "---------------%s INFO---------------\n", strings.ToUpper(ch.String()))
	for _, k := range keys {
		_, _ = buf.WriteString(k)
		_, _ = buf.WriteString(" : ")
		_, _ = buf.WriteString(formatValue(fields[k]))
		_ = buf.WriteByte('\n')
	}
	_ = buf.WriteByte('\n')
}

func formatValue(v interface{}) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Array, reflect.Slice:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, " , ")
	case reflect.Struct:
		parts := make([]string, rv.NumField())
		for i := range parts {
			parts[i] = formatValue(rv.Field(i).Interface())
		}
		return "(" + strings.Join(parts, " , ") + ")"
	}
	return fmt.Sprint(v)
}
