package primitives

import (
	"fmt"
	"hash/fnv"
)

// PageID uniquely identifies a page within the system: the table the
// page belongs to plus its page number within that table's file.
//
// PageID is a comparable value type so it can be used directly as a map
// key, which is what the latch table does with it.
type PageID struct {
	Table TableID
	Page  PageNumber
}

// NewPageID creates a PageID for the given table and page number.
func NewPageID(table TableID, page PageNumber) PageID {
	return PageID{Table: table, Page: page}
}

// Hash returns a hash code for this page ID, suitable for sharding
// pages across buckets.
func (p PageID) Hash() HashCode {
	h := fnv.New64a()
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(uint64(p.Table) >> (8 * i))
		buf[8+i] = byte(uint64(p.Page) >> (8 * i))
	}
	h.Write(buf[:])
	return HashCode(h.Sum64())
}

// String returns a string representation of the PageID.
func (p PageID) String() string {
	return fmt.Sprintf("Page(%d:%d)", p.Table, p.Page)
}

// Filepath is a path to a table's backing file.
type Filepath string

// Hash derives the TableID for a backing file path.
func (f Filepath) Hash() TableID {
	h := fnv.New64a()
	h.Write([]byte(f))
	return TableID(h.Sum64())
}
