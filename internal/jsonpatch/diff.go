package jsonpatch

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"coffee-engine/internal/model"
)

// Compare lists every field that differs between two scenario results as
// RFC 6902 style operations carrying both the old and the new value. Paths
// are JSON pointers into the result document and come out in document order
// with object keys sorted, so equal inputs always yield equal output.
func Compare(base, variant model.ScenarioResult) ([]model.ScenarioChange, error) {
	a, err := toDocument(base)
	if err != nil {
		return nil, fmt.Errorf("encode base: %w", err)
	}
	b, err := toDocument(variant)
	if err != nil {
		return nil, fmt.Errorf("encode variant: %w", err)
	}

	changes := Diff(a, b, "")
	if changes == nil {
		changes = []model.ScenarioChange{}
	}
	return changes, nil
}

func toDocument(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Diff computes the operations that transform a into b.
// Both a and b should be the result of json.Unmarshal into interface{}.
// Path should be "" for the root document.
func Diff(a, b interface{}, path string) []model.ScenarioChange {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []model.ScenarioChange{replaceOp(path, a, b)}
	}

	aMap, aIsMap := a.(map[string]interface{})
	bMap, bIsMap := b.(map[string]interface{})
	if aIsMap && bIsMap {
		return diffObjects(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]interface{})
	bArr, bIsArr := b.([]interface{})
	if aIsArr && bIsArr {
		return diffArrays(aArr, bArr, path)
	}

	// maps and slices are not comparable with !=
	if aIsMap || bIsMap || aIsArr || bIsArr || a != b {
		return []model.ScenarioChange{replaceOp(path, a, b)}
	}
	return nil
}

func diffObjects(a, b map[string]interface{}, path string) []model.ScenarioChange {
	var ops []model.ScenarioChange

	for _, k := range unionKeys(a, b) {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		bv, inB := b[k]
		switch {
		case !inB:
			ops = append(ops, removeOp(childPath, av))
		case !inA:
			ops = append(ops, addOp(childPath, bv))
		default:
			ops = append(ops, Diff(av, bv, childPath)...)
		}
	}

	return ops
}

func diffArrays(a, b []interface{}, path string) []model.ScenarioChange {
	var ops []model.ScenarioChange

	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	for i := 0; i < minLen; i++ {
		ops = append(ops, Diff(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}

	// Elements removed (reverse order to keep indices valid)
	for i := len(a) - 1; i >= minLen; i-- {
		ops = append(ops, removeOp(path+"/"+strconv.Itoa(i), a[i]))
	}

	for i := minLen; i < len(b); i++ {
		ops = append(ops, addOp(path+"/"+strconv.Itoa(i), b[i]))
	}

	return ops
}

func unionKeys(a, b map[string]interface{}) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func replaceOp(path string, from, to interface{}) model.ScenarioChange {
	return model.ScenarioChange{Op: "replace", Path: path, From: from, To: to}
}

func addOp(path string, value interface{}) model.ScenarioChange {
	return model.ScenarioChange{Op: "add", Path: path, To: value}
}

func removeOp(path string, old interface{}) model.ScenarioChange {
	return model.ScenarioChange{Op: "remove", Path: path, From: old}
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
