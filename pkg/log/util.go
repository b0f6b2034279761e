package log

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// toFields turns the variadic arguments of a log call into zap fields.
// zap.Field and error arguments stand alone; everything else is read as
// key/value pairs. A trailing value without a key is kept as "arg#<index>",
// and a key that is not a string is printed as the field name.
func toFields(args ...any) []zap.Field {
	if len(args) == 0 {
		return nil
	}

	fields := make([]zap.Field, 0, len(args)/2+1)
	for i := 0; i < len(args); i++ {
		switch a := args[i].(type) {
		case zap.Field:
			fields = append(fields, a)
			continue
		case error:
			fields = append(fields, zap.Error(a))
			continue
		}

		if i == len(args)-1 {
			fields = append(fields, zap.Any("arg#"+strconv.Itoa(i), args[i]))
			break
		}

		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields = append(fields, typedField(key, args[i+1]))
		i++
	}
	return fields
}

// typedField picks the zap constructor for the values the console logs: counts,
// ids, statuses, elapsed times and the optional pointers of fleet entities.
func typedField(key string, val any) zap.Field {
	switch v := val.(type) {
	case string:
		return zap.String(key, v)
	case bool:
		return zap.Bool(key, v)
	case int:
		return zap.Int(key, v)
	case int32:
		return zap.Int32(key, v)
	case int64:
		return zap.Int64(key, v)
	case uint:
		return zap.Uint(key, v)
	case uint64:
		return zap.Uint64(key, v)
	case float64:
		return zap.Float64(key, v)
	case time.Duration:
		return zap.Duration(key, v)
	case time.Time:
		return zap.Time(key, v)
	case error:
		return zap.NamedError(key, v)
	case fmt.Stringer:
		return zap.Stringer(key, v)
	case []byte:
		return zap.Binary(key, v)
	case []string:
		return zap.Strings(key, v)
	case []int64:
		return zap.Int64s(key, v)
	case *string:
		if v == nil {
			return zap.Skip()
		}
		return zap.String(key, *v)
	case *float64:
		if v == nil {
			return zap.Skip()
		}
		return zap.Float64(key, *v)
	}

	// Page ids, enum statuses and operation names are named string types.
	if rv := reflect.ValueOf(val); rv.IsValid() && rv.Kind() == reflect.String {
		return zap.String(key, rv.String())
	}
	return zap.Any(key, val)
}
