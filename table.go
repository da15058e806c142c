package hincr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/challenai/hincr/codec"
	"github.com/challenai/hincr/logger"
	"github.com/challenai/hincr/thrift/hbase"
	"github.com/dustin/go-humanize"
)

// DefaultWriteBufferSize matches HBase's hbase.client.write.buffer default.
const DefaultWriteBufferSize int64 = 2 * 1024 * 1024

// Table is a handle on one HBase table. Puts are buffered client side while
// auto-flush is off and sent with a single putMultiple on Flush, or as soon
// as the buffer grows past its size limit. A failed flush keeps the buffer.
//
// A Table is not safe for concurrent use.
type Table struct {
	name            []byte
	db              *hbase.THBaseServiceClient
	closer          io.Closer
	cdc             codec.Codec
	log             logger.Logger
	autoFlush       bool
	writeBuffer     []*hbase.TPut
	bufferedSize    int64
	writeBufferSize int64
	flushFailed     bool
	closed          bool
}

// NewTable wraps an open THBaseService client. closer, if not nil, is
// closed with the table.
func NewTable(client *hbase.THBaseServiceClient, closer io.Closer, name string, c codec.Codec) *Table {
	return &Table{
		name:            []byte(name),
		db:              client,
		closer:          closer,
		cdc:             c,
		log:             logger.Nop(),
		autoFlush:       true,
		writeBufferSize: DefaultWriteBufferSize,
	}
}

func (t *Table) Name() string {
	return string(t.name)
}

func (t *Table) SetLogger(l logger.Logger) {
	t.log = l
}

// SetAutoFlush turns per-put flushing on or off. Turning it on does not flush
// what is already buffered.
func (t *Table) SetAutoFlush(autoFlush bool) {
	t.autoFlush = autoFlush
}

func (t *Table) SetWriteBufferSize(size int64) {
	t.writeBufferSize = size
	t.log.Infof("write buffer for %s set to %s", t.name, humanize.IBytes(uint64(size)))
}

// Buffered returns the number of puts waiting for a flush.
func (t *Table) Buffered() int {
	return len(t.writeBuffer)
}

// Exists checks the table against the gateway.
func (t *Table) Exists(ctx context.Context) error {
	ok, err := t.db.TableExists(ctx, TableName(string(t.name)))
	if err != nil {
		return fmt.Errorf("%w: table %s: %w", ErrConnection, t.name, err)
	}
	if !ok {
		return fmt.Errorf("%w: table %s does not exist", ErrConnection, t.name)
	}
	return nil
}

// Apply performs one write operation against cell.
func (t *Table) Apply(ctx context.Context, cell Cell, op WriteOp) error {
	switch op := op.(type) {
	case AtomicIncrement:
		_, err := t.Increment(ctx, cell, op.Amount)
		return err
	case DeltaPut:
		return t.put(ctx, op.tput(cell, t.cdc))
	case LiteralPut:
		return t.put(ctx, op.tput(cell, t.cdc))
	default:
		return fmt.Errorf("unsupported operation %T", op)
	}
}

// Increment atomically adds amount to the counter at cell and returns the
// new value.
func (t *Table) Increment(ctx context.Context, cell Cell, amount int64) (int64, error) {
	if t.closed {
		return 0, ErrClosed
	}
	result, err := t.db.Increment(ctx, t.name, AtomicIncrement{Amount: amount}.tincrement(cell))
	if err != nil {
		return 0, fmt.Errorf("%w: increment %s: %w", ErrIO, cell, err)
	}
	value, err := t.valueOf(result, cell)
	if err != nil {
		// Gateways may return an empty result when results are not requested.
		if errors.Is(err, ErrCellNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return value, nil
}

func (t *Table) put(ctx context.Context, put *hbase.TPut) error {
	if t.closed {
		return ErrClosed
	}
	t.writeBuffer = append(t.writeBuffer, put)
	t.bufferedSize += putSize(put)
	if t.autoFlush || t.bufferedSize > t.writeBufferSize {
		return t.Flush(ctx)
	}
	return nil
}

// Flush sends every buffered put. On failure the buffer is left intact for
// an explicit Flush by the caller; Close will not send it again.
func (t *Table) Flush(ctx context.Context) error {
	if len(t.writeBuffer) == 0 {
		return nil
	}
	if err := t.db.PutMultiple(ctx, t.name, t.writeBuffer); err != nil {
		t.flushFailed = true
		return fmt.Errorf("%w: flush %d puts: %w", ErrIO, len(t.writeBuffer), err)
	}
	t.flushFailed = false
	t.writeBuffer = nil
	t.bufferedSize = 0
	return nil
}

// Get reads the raw value at cell.
func (t *Table) Get(ctx context.Context, cell Cell) ([]byte, error) {
	if t.closed {
		return nil, ErrClosed
	}
	tget := &hbase.TGet{
		Row:     cell.Row,
		Columns: []*hbase.TColumn{{Family: cell.Family, Qualifier: cell.Qualifier}},
	}
	result, err := t.db.Get(ctx, t.name, tget)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", ErrIO, cell, err)
	}
	return t.rawValueOf(result, cell)
}

// GetLong reads the value at cell as a counter.
func (t *Table) GetLong(ctx context.Context, cell Cell) (int64, error) {
	b, err := t.Get(ctx, cell)
	if err != nil {
		return 0, err
	}
	return t.cdc.DecodeLong(b)
}

func (t *Table) rawValueOf(result *hbase.TResult_, cell Cell) ([]byte, error) {
	if result != nil {
		for _, cv := range result.ColumnValues {
			if bytes.Equal(cv.Family, cell.Family) && bytes.Equal(cv.Qualifier, cell.Qualifier) {
				return cv.Value, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCellNotFound, cell)
}

func (t *Table) valueOf(result *hbase.TResult_, cell Cell) (int64, error) {
	b, err := t.rawValueOf(result, cell)
	if err != nil {
		return 0, err
	}
	return t.cdc.DecodeLong(b)
}

// Close is CloseContext without a deadline on the final flush.
func (t *Table) Close() error {
	return t.CloseContext(context.Background())
}

// CloseContext flushes buffered puts and releases the connection. The
// connection is released even when the flush fails. Puts whose last flush
// failed are dropped, not sent again: the server may already have applied
// them.
func (t *Table) CloseContext(ctx context.Context) error {
	if t.closed {
		return nil
	}
	t.closed = true
	var errs []error
	if n := len(t.writeBuffer); n > 0 && t.flushFailed {
		t.log.Warnf("dropping %d buffered puts after failed flush", n)
		t.writeBuffer = nil
		t.bufferedSize = 0
	} else if n > 0 {
		if err := t.Flush(ctx); err != nil {
			t.log.Errorf("dropping %d buffered puts on close: %v", n, err)
			errs = append(errs, err)
		}
	}
	if t.closer != nil {
		if err := t.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%w: close: %w", ErrIO, err))
		}
	}
	return errors.Join(errs...)
}
