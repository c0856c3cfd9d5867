// Package patch turns a client-supplied JSON object into a Mongo $set document.
package patch

import (
	"strings"
	"time"

	"github.com/dalemusser/waygo/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson"
)

// Set copies fields into a $set document and stamps updatedAt with now.
// Empty keys, _id and operator keys ($-prefixed, at any path segment) are
// rejected. Keys listed in deny are rejected as well. Dotted paths pass
// through so callers can update one entry of an embedded map.
func Set(fields map[string]any, now time.Time, deny ...string) (bson.M, error) {
	if len(fields) == 0 {
		return nil, apperr.Validation("Nothing to update")
	}
	set := bson.M{}
	for k, v := range fields {
		if !allowed(k, deny) {
			return nil, apperr.New(apperr.ErrValidation, "Field %q cannot be updated", k)
		}
		set[k] = v
	}
	set["updatedAt"] = now
	return set, nil
}

func allowed(key string, deny []string) bool {
	if key == "" || key == "_id" || strings.HasPrefix(key, "_id.") {
		return false
	}
	for _, seg := range strings.Split(key, ".") {
		if seg == "" || strings.HasPrefix(seg, "$") {
			return false
		}
	}
	root := strings.SplitN(key, ".", 2)[0]
	for _, d := range deny {
		if root == d {
			return false
		}
	}
	return true
}

// CheckNames verifies that every key of doc is a plain top-level field name
// that may be written verbatim into a stored document. Keys listed in deny
// are rejected as well.
func CheckNames(doc map[string]any, deny ...string) error {
	for k := range doc {
		if k == "" || k == "_id" || strings.ContainsAny(k, ".$") {
			return apperr.New(apperr.ErrValidation, "Field %q is not allowed", k)
		}
		for _, d := range deny {
			if k == d {
				return apperr.New(apperr.ErrValidation, "Field %q is not allowed", k)
			}
		}
	}
	return nil
}
