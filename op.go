package hincr

import (
	"github.com/challenai/hincr/codec"
	"github.com/challenai/hincr/thrift/hbase"
)

// DeltaWriteAttribute marks a put whose value is added to the stored value
// by the region server instead of replacing it. The attribute value is empty.
const DeltaWriteAttribute = "d"

// WriteOp is one write against a cell: AtomicIncrement, DeltaPut or LiteralPut.
type WriteOp interface {
	isWriteOp()
}

// AtomicIncrement adds Amount to the counter with a server-side increment.
// It is sent immediately and is never buffered.
type AtomicIncrement struct {
	Amount int64
}

// DeltaPut writes Value tagged with DeltaWriteAttribute, so it is reconciled
// as an increment without a read on the write path.
type DeltaPut struct {
	Value int64
}

// LiteralPut overwrites the cell with Value.
type LiteralPut struct {
	Value int64
}

func (AtomicIncrement) isWriteOp() {}
func (DeltaPut) isWriteOp()        {}
func (LiteralPut) isWriteOp()      {}

func (op DeltaPut) tput(cell Cell, cdc codec.Codec) *hbase.TPut {
	put := LiteralPut{Value: op.Value}.tput(cell, cdc)
	put.Attributes = map[string][]byte{DeltaWriteAttribute: {}}
	return put
}

func (op LiteralPut) tput(cell Cell, cdc codec.Codec) *hbase.TPut {
	return &hbase.TPut{
		Row: cell.Row,
		ColumnValues: []*hbase.TColumnValue{{
			Family:    cell.Family,
			Qualifier: cell.Qualifier,
			Value:     cdc.EncodeLong(op.Value),
		}},
	}
}

func (op AtomicIncrement) tincrement(cell Cell) *hbase.TIncrement {
	return &hbase.TIncrement{
		Row: cell.Row,
		Columns: []*hbase.TColumnIncrement{{
			Family:    cell.Family,
			Qualifier: cell.Qualifier,
			Amount:    op.Amount,
		}},
	}
}

// putSize approximates the client-side heap cost of a buffered put, for
// write buffer accounting.
func putSize(put *hbase.TPut) int64 {
	const overhead = 64
	size := int64(overhead + len(put.Row))
	for _, cv := range put.ColumnValues {
		size += int64(overhead + len(cv.Family) + len(cv.Qualifier) + len(cv.Value))
	}
	for k, v := range put.Attributes {
		size += int64(len(k) + len(v))
	}
	return size
}
