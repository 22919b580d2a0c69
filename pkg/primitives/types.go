package primitives

// TableID identifies the table (or index file) a page belongs to.
// It is derived from hashing the backing file path, so the same path
// always yields the same ID.
type TableID uint64

// PageNumber represents a page number within a table file.
type PageNumber uint64

// HashCode represents a hash value computed for fast lookups of
// page identifiers in hash-based structures.
type HashCode uint64

// Sentinel values for invalid/unset identifiers
const (
	// InvalidTableID represents an invalid or unset table ID.
	InvalidTableID TableID = 0

	// InvalidPageNumber represents an invalid or unset page number.
	// Used for: no parent page, no sibling, uninitialized references.
	InvalidPageNumber PageNumber = 0
)

// IsValid checks if the TableID is a valid non-zero identifier.
func (t TableID) IsValid() bool {
	return t != InvalidTableID
}
