package hincr

import (
	"errors"
	"strings"

	"github.com/challenai/hincr/thrift/hbase"
)

var (
	// ErrConnection means the gateway could not be reached or the table does not exist.
	ErrConnection = errors.New("connection error")
	// ErrIO wraps any failed call against an open table.
	ErrIO = errors.New("io error")
	// ErrCellNotFound means a read found no value at the cell.
	ErrCellNotFound = errors.New("cell not found")
	// ErrClosed is returned by operations on a closed table.
	ErrClosed = errors.New("table closed")
)

// Cell addresses a single value in a table.
type Cell struct {
	Row       []byte
	Family    []byte
	Qualifier []byte
}

func (c Cell) String() string {
	return string(c.Row) + "/" + string(c.Family) + ":" + string(c.Qualifier)
}

// TableName splits an optionally namespace-qualified name ("ns:table").
func TableName(name string) *hbase.TTableName {
	if ns, table, ok := strings.Cut(name, ":"); ok {
		return &hbase.TTableName{Ns: []byte(ns), Qualifier: []byte(table)}
	}
	return &hbase.TTableName{Qualifier: []byte(name)}
}
