// Package models defines the record types returned by the resource managers
// and the parameter structs accepted by create/update operations.
//
// Records are immutable snapshots of server-side state at fetch time; they
// are not live-synced.
package models

import (
	"strconv"
	"strings"
	"time"
)

// Row is a single result row keyed by column name. Lookups are tolerant of
// the server's varying column spellings ("Name", "Is Default", "created_on").
type Row map[string]string

// Field returns the first non-empty value among the given column names.
// Matching ignores case and treats spaces, dashes and underscores alike.
func (r Row) Field(names ...string) string {
	for _, name := range names {
		want := normalizeKey(name)
		for k, v := range r {
			if normalizeKey(k) == want && v != "" {
				return v
			}
		}
	}
	return ""
}

func (r Row) FieldBool(names ...string) bool {
	switch strings.ToLower(r.Field(names...)) {
	case "true", "t", "yes", "1":
		return true
	}
	return false
}

func (r Row) FieldInt(names ...string) int {
	n, err := strconv.Atoi(r.Field(names...))
	if err != nil {
		return 0
	}
	return n
}

func (r Row) FieldTime(names ...string) time.Time {
	t, _ := ParseTime(r.Field(names...))
	return t
}

func normalizeKey(k string) string {
	k = strings.ToLower(k)
	k = strings.ReplaceAll(k, " ", "_")
	k = strings.ReplaceAll(k, "-", "_")
	return k
}

// timeLayouts covers the timestamp renderings observed across control plane
// responses.
var timeLayouts = []string{
	"2006-01-02 15:04:05.000 -0700",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
	time.RFC3339Nano,
}

// ParseTime parses a timestamp in any supported layout, including Unix
// seconds or milliseconds.
func ParseTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		// Millisecond timestamps are far past year 10k when read as seconds.
		if n > 1e12 {
			return time.UnixMilli(n), true
		}
		return time.Unix(n, 0), true
	}
	return time.Time{}, false
}

// BaseResource carries the attributes every resource kind shares.
type BaseResource struct {
	Name      string
	Owner     string
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func baseFromRow(row Row) BaseResource {
	return BaseResource{
		Name:      row.Field("name", "relation_name", "object_name"),
		Owner:     row.Field("owner"),
		Comment:   row.Field("comment"),
		CreatedAt: row.FieldTime("created_at", "created_on"),
		UpdatedAt: row.FieldTime("updated_at", "updated_on", "modified_at"),
	}
}
