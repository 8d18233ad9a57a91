package patch

import "time"

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// AnySet reports whether at least one optional field of a partial update was supplied.
func AnySet(fields ...any) bool {
	for _, f := range fields {
		switch v := f.(type) {
		case nil:
			continue
		case *string:
			if v != nil {
				return true
			}
		case *bool:
			if v != nil {
				return true
			}
		case *int32:
			if v != nil {
				return true
			}
		case *int64:
			if v != nil {
				return true
			}
		case *float64:
			if v != nil {
				return true
			}
		case *time.Time:
			if v != nil {
				return true
			}
		default:
			return true
		}
	}
	return false
}
