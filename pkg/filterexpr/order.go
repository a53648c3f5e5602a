package filterexpr

import (
	"errors"
	"fmt"
	"strings"
)

const defaultMaxKeys = 2

// OrderField declares how one whitelisted order key sorts.
type OrderField struct {
	NullsFirst bool
}

// OrderSchema whitelists the order keys of one resource and its defaults.
type OrderSchema struct {
	DefaultKey  string
	DefaultDesc bool
	FallbackKey string
	MaxKeys     int
	Fields      map[string]OrderField
}

// OrderKey is one resolved sort key.
type OrderKey struct {
	Field      string
	Desc       bool
	NullsFirst bool
}

// Ordering is the resolved order_by clause. The schema's fallback key is always last
// so that equal primary values keep a deterministic order.
type Ordering struct {
	Keys []OrderKey
}

// ParseOrderBy resolves a comma separated "field [asc|desc]" list against schema.
func ParseOrderBy(raw string, schema OrderSchema) (Ordering, error) {
	if schema.DefaultKey == "" {
		return Ordering{}, errors.New("order schema default key required")
	}
	if schema.FallbackKey == "" {
		return Ordering{}, errors.New("order schema fallback key required")
	}
	if _, ok := schema.Fields[schema.DefaultKey]; !ok {
		return Ordering{}, fmt.Errorf("order key %q missing from schema fields", schema.DefaultKey)
	}
	if _, ok := schema.Fields[schema.FallbackKey]; !ok {
		return Ordering{}, fmt.Errorf("fallback order key %q missing from schema fields", schema.FallbackKey)
	}
	maxKeys := schema.MaxKeys
	if maxKeys <= 0 {
		maxKeys = defaultMaxKeys
	}

	var keys []OrderKey
	seen := map[string]struct{}{}
	for _, seg := range strings.Split(raw, ",") {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		key := parts[0]
		rule, ok := schema.Fields[key]
		if !ok {
			return Ordering{}, fmt.Errorf("field %q cannot be used for ordering", key)
		}

		var desc bool
		switch len(parts) {
		case 1:
		case 2:
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return Ordering{}, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
			}
		default:
			return Ordering{}, fmt.Errorf("invalid order segment %q", strings.TrimSpace(seg))
		}

		if _, dup := seen[key]; dup {
			return Ordering{}, fmt.Errorf("duplicate order key %q", key)
		}
		seen[key] = struct{}{}
		if len(keys) == maxKeys {
			return Ordering{}, fmt.Errorf("order_by supports at most %d keys", maxKeys)
		}
		keys = append(keys, OrderKey{Field: key, Desc: desc, NullsFirst: rule.NullsFirst})
	}

	if len(keys) == 0 {
		keys = append(keys, OrderKey{
			Field:      schema.DefaultKey,
			Desc:       schema.DefaultDesc,
			NullsFirst: schema.Fields[schema.DefaultKey].NullsFirst,
		})
		seen[schema.DefaultKey] = struct{}{}
	}
	if _, ok := seen[schema.FallbackKey]; !ok {
		keys = append(keys, OrderKey{
			Field:      schema.FallbackKey,
			NullsFirst: schema.Fields[schema.FallbackKey].NullsFirst,
		})
	}

	return Ordering{Keys: keys}, nil
}
