package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/wellnest/internal/logger"
)

// GetList decodes the list stored under key. A missing key or a document
// that is not a JSON array yields an empty list; elements that fail to
// decode are dropped. The result is never nil.
func GetList[T any](n *Namespace, key string) []T {
	v, ok := n.raw(key)
	if !ok || v == "" {
		return []T{}
	}

	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(v), &raws); err != nil {
		logger.Warn("Malformed list, treating as empty", "namespace", n.name, "key", key, "error", err)
		return []T{}
	}

	items := make([]T, 0, len(raws))
	for i, raw := range raws {
		if string(raw) == "null" {
			logger.Warn("Dropping null list element", "namespace", n.name, "key", key, "index", i)
			continue
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			logger.Warn("Dropping malformed list element", "namespace", n.name, "key", key, "index", i, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items
}

// PutList replaces the whole list stored under key.
func PutList[T any](n *Namespace, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", n.name, key, err)
	}
	return n.put(key, string(data))
}
