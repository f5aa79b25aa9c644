// Package uid provides small generators for unique identifiers.
//
// StringID implementations produce opaque string IDs (for example UUIDs used
// as JWT IDs), while NumberID implementations produce sortable int64 IDs
// suitable for database rows.
package uid

// StringID generates opaque string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates int64 identifiers.
type NumberID interface {
	Generate() int64
}
