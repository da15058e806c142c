// Package hbase holds the HBase Thrift2 (THBaseService) structs and client
// calls used by hincr. Field ids and names follow hbase-thrift's
// hbase.thrift so the structs interoperate with a stock Thrift2 gateway.
// Fields not listed here are skipped on read and never written.
package hbase

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// TColumn addresses a column (family, optional qualifier) in a TGet.
type TColumn struct {
	Family    []byte
	Qualifier []byte
}

func (c *TColumn) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "TColumn", func() error {
		if err := writeBinaryField(ctx, p, "family", 1, c.Family); err != nil {
			return err
		}
		if c.Qualifier != nil {
			return writeBinaryField(ctx, p, "qualifier", 2, c.Qualifier)
		}
		return nil
	})
}

func (c *TColumn) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typ == thrift.STRING:
			c.Family, err = p.ReadBinary(ctx)
		case id == 2 && typ == thrift.STRING:
			c.Qualifier, err = p.ReadBinary(ctx)
		default:
			return false, nil
		}
		return true, err
	})
}

// TColumnValue is a single cell value, used by TPut and TResult_.
type TColumnValue struct {
	Family    []byte
	Qualifier []byte
	Value     []byte
}

func (c *TColumnValue) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "TColumnValue", func() error {
		if err := writeBinaryField(ctx, p, "family", 1, c.Family); err != nil {
			return err
		}
		if err := writeBinaryField(ctx, p, "qualifier", 2, c.Qualifier); err != nil {
			return err
		}
		return writeBinaryField(ctx, p, "value", 3, c.Value)
	})
}

func (c *TColumnValue) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typ == thrift.STRING:
			c.Family, err = p.ReadBinary(ctx)
		case id == 2 && typ == thrift.STRING:
			c.Qualifier, err = p.ReadBinary(ctx)
		case id == 3 && typ == thrift.STRING:
			c.Value, err = p.ReadBinary(ctx)
		default:
			return false, nil
		}
		return true, err
	})
}

// TColumnIncrement is one column of a TIncrement. Amount defaults to 1 on
// the server when unset; it is always written here.
type TColumnIncrement struct {
	Family    []byte
	Qualifier []byte
	Amount    int64
}

func (c *TColumnIncrement) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "TColumnIncrement", func() error {
		if err := writeBinaryField(ctx, p, "family", 1, c.Family); err != nil {
			return err
		}
		if err := writeBinaryField(ctx, p, "qualifier", 2, c.Qualifier); err != nil {
			return err
		}
		return writeI64Field(ctx, p, "amount", 3, c.Amount)
	})
}

func (c *TColumnIncrement) Read(ctx context.Context, p thrift.TProtocol) error {
	c.Amount = 1
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typ == thrift.STRING:
			c.Family, err = p.ReadBinary(ctx)
		case id == 2 && typ == thrift.STRING:
			c.Qualifier, err = p.ReadBinary(ctx)
		case id == 3 && typ == thrift.I64:
			c.Amount, err = p.ReadI64(ctx)
		default:
			return false, nil
		}
		return true, err
	})
}

// TGet reads one row, optionally restricted to Columns.
type TGet struct {
	Row     []byte
	Columns []*TColumn
}

func (g *TGet) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "TGet", func() error {
		if err := writeBinaryField(ctx, p, "row", 1, g.Row); err != nil {
			return err
		}
		if g.Columns == nil {
			return nil
		}
		return writeField(ctx, p, "columns", thrift.LIST, 2, func() error {
			if err := p.WriteListBegin(ctx, thrift.STRUCT, len(g.Columns)); err != nil {
				return thrift.PrependError("error writing list begin: ", err)
			}
			for _, col := range g.Columns {
				if err := col.Write(ctx, p); err != nil {
					return err
				}
			}
			return p.WriteListEnd(ctx)
		})
	})
}

func (g *TGet) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typ == thrift.STRING:
			g.Row, err = p.ReadBinary(ctx)
		case id == 2 && typ == thrift.LIST:
			err = readList(ctx, p, func() error {
				col := &TColumn{}
				g.Columns = append(g.Columns, col)
				return col.Read(ctx, p)
			})
		default:
			return false, nil
		}
		return true, err
	})
}

// TPut writes ColumnValues to Row. Attributes travel to the region server
// with the mutation, where coprocessors may interpret them.
type TPut struct {
	Row          []byte
	ColumnValues []*TColumnValue
	Attributes   map[string][]byte
}

func (t *TPut) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "TPut", func() error {
		if err := writeBinaryField(ctx, p, "row", 1, t.Row); err != nil {
			return err
		}
		if err := writeColumnValues(ctx, p, 2, t.ColumnValues); err != nil {
			return err
		}
		if t.Attributes != nil {
			return writeAttributes(ctx, p, 5, t.Attributes)
		}
		return nil
	})
}

func (t *TPut) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typ == thrift.STRING:
			t.Row, err = p.ReadBinary(ctx)
		case id == 2 && typ == thrift.LIST:
			t.ColumnValues, err = readColumnValues(ctx, p)
		case id == 5 && typ == thrift.MAP:
			t.Attributes, err = readAttributes(ctx, p)
		default:
			return false, nil
		}
		return true, err
	})
}

// TIncrement atomically adds to counter columns of Row.
type TIncrement struct {
	Row     []byte
	Columns []*TColumnIncrement
}

func (t *TIncrement) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "TIncrement", func() error {
		if err := writeBinaryField(ctx, p, "row", 1, t.Row); err != nil {
			return err
		}
		return writeField(ctx, p, "columns", thrift.LIST, 2, func() error {
			if err := p.WriteListBegin(ctx, thrift.STRUCT, len(t.Columns)); err != nil {
				return thrift.PrependError("error writing list begin: ", err)
			}
			for _, col := range t.Columns {
				if err := col.Write(ctx, p); err != nil {
					return err
				}
			}
			return p.WriteListEnd(ctx)
		})
	})
}

func (t *TIncrement) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typ == thrift.STRING:
			t.Row, err = p.ReadBinary(ctx)
		case id == 2 && typ == thrift.LIST:
			err = readList(ctx, p, func() error {
				col := &TColumnIncrement{}
				t.Columns = append(t.Columns, col)
				return col.Read(ctx, p)
			})
		default:
			return false, nil
		}
		return true, err
	})
}

// TResult_ is the result of a get or increment. An empty Row means no row.
type TResult_ struct {
	Row          []byte
	ColumnValues []*TColumnValue
}

func (r *TResult_) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "TResult", func() error {
		if r.Row != nil {
			if err := writeBinaryField(ctx, p, "row", 1, r.Row); err != nil {
				return err
			}
		}
		return writeColumnValues(ctx, p, 2, r.ColumnValues)
	})
}

func (r *TResult_) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typ == thrift.STRING:
			r.Row, err = p.ReadBinary(ctx)
		case id == 2 && typ == thrift.LIST:
			r.ColumnValues, err = readColumnValues(ctx, p)
		default:
			return false, nil
		}
		return true, err
	})
}

// TTableName is a namespace-qualified table name. A nil Ns is the default
// namespace.
type TTableName struct {
	Ns        []byte
	Qualifier []byte
}

func (t *TTableName) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "TTableName", func() error {
		if t.Ns != nil {
			if err := writeBinaryField(ctx, p, "ns", 1, t.Ns); err != nil {
				return err
			}
		}
		return writeBinaryField(ctx, p, "qualifier", 2, t.Qualifier)
	})
}

func (t *TTableName) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typ == thrift.STRING:
			t.Ns, err = p.ReadBinary(ctx)
		case id == 2 && typ == thrift.STRING:
			t.Qualifier, err = p.ReadBinary(ctx)
		default:
			return false, nil
		}
		return true, err
	})
}

// TIOError is thrown by the gateway for any failure talking to HBase.
type TIOError struct {
	Message  *string
	CanRetry *bool
}

func (e *TIOError) Error() string {
	if e.Message == nil {
		return "TIOError"
	}
	return fmt.Sprintf("TIOError: %s", *e.Message)
}

func (e *TIOError) TExceptionType() thrift.TExceptionType {
	return thrift.TExceptionTypeCompiled
}

func (e *TIOError) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "TIOError", func() error {
		if e.Message != nil {
			err := writeField(ctx, p, "message", thrift.STRING, 1, func() error {
				return p.WriteString(ctx, *e.Message)
			})
			if err != nil {
				return err
			}
		}
		if e.CanRetry != nil {
			return writeField(ctx, p, "canRetry", thrift.BOOL, 2, func() error {
				return p.WriteBool(ctx, *e.CanRetry)
			})
		}
		return nil
	})
}

func (e *TIOError) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 1 && typ == thrift.STRING:
			msg, err := p.ReadString(ctx)
			e.Message = &msg
			return true, err
		case id == 2 && typ == thrift.BOOL:
			retry, err := p.ReadBool(ctx)
			e.CanRetry = &retry
			return true, err
		}
		return false, nil
	})
}

func writeStruct(ctx context.Context, p thrift.TProtocol, name string, fields func() error) error {
	if err := p.WriteStructBegin(ctx, name); err != nil {
		return thrift.PrependError(fmt.Sprintf("%s write struct begin error: ", name), err)
	}
	if err := fields(); err != nil {
		return err
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return thrift.PrependError("write field stop error: ", err)
	}
	if err := p.WriteStructEnd(ctx); err != nil {
		return thrift.PrependError("write struct stop error: ", err)
	}
	return nil
}

func writeField(ctx context.Context, p thrift.TProtocol, name string, typ thrift.TType, id int16, value func() error) error {
	if err := p.WriteFieldBegin(ctx, name, typ, id); err != nil {
		return thrift.PrependError(fmt.Sprintf("write field begin error %d:%s: ", id, name), err)
	}
	if err := value(); err != nil {
		return thrift.PrependError(fmt.Sprintf("%T.%s (%d) field write error: ", p, name, id), err)
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return thrift.PrependError(fmt.Sprintf("write field end error %d:%s: ", id, name), err)
	}
	return nil
}

func writeBinaryField(ctx context.Context, p thrift.TProtocol, name string, id int16, v []byte) error {
	return writeField(ctx, p, name, thrift.STRING, id, func() error {
		return p.WriteBinary(ctx, v)
	})
}

func writeI64Field(ctx context.Context, p thrift.TProtocol, name string, id int16, v int64) error {
	return writeField(ctx, p, name, thrift.I64, id, func() error {
		return p.WriteI64(ctx, v)
	})
}

func writeColumnValues(ctx context.Context, p thrift.TProtocol, id int16, values []*TColumnValue) error {
	return writeField(ctx, p, "columnValues", thrift.LIST, id, func() error {
		if err := p.WriteListBegin(ctx, thrift.STRUCT, len(values)); err != nil {
			return thrift.PrependError("error writing list begin: ", err)
		}
		for _, v := range values {
			if err := v.Write(ctx, p); err != nil {
				return err
			}
		}
		return p.WriteListEnd(ctx)
	})
}

func writeAttributes(ctx context.Context, p thrift.TProtocol, id int16, attrs map[string][]byte) error {
	return writeField(ctx, p, "attributes", thrift.MAP, id, func() error {
		if err := p.WriteMapBegin(ctx, thrift.STRING, thrift.STRING, len(attrs)); err != nil {
			return thrift.PrependError("error writing map begin: ", err)
		}
		for k, v := range attrs {
			if err := p.WriteBinary(ctx, []byte(k)); err != nil {
				return err
			}
			if err := p.WriteBinary(ctx, v); err != nil {
				return err
			}
		}
		return p.WriteMapEnd(ctx)
	})
}

// readStruct walks the fields of a struct, handing each to field. Fields the
// callback does not claim are skipped.
func readStruct(ctx context.Context, p thrift.TProtocol, field func(id int16, typ thrift.TType) (bool, error)) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return thrift.PrependError("read struct begin error: ", err)
	}
	for {
		_, typ, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return thrift.PrependError(fmt.Sprintf("field %d read error: ", id), err)
		}
		if typ == thrift.STOP {
			break
		}
		handled, err := field(id, typ)
		if err != nil {
			return thrift.PrependError(fmt.Sprintf("error reading field %d: ", id), err)
		}
		if !handled {
			if err := p.Skip(ctx, typ); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := p.ReadStructEnd(ctx); err != nil {
		return thrift.PrependError("read struct end error: ", err)
	}
	return nil
}

func readList(ctx context.Context, p thrift.TProtocol, elem func() error) error {
	_, size, err := p.ReadListBegin(ctx)
	if err != nil {
		return thrift.PrependError("error reading list begin: ", err)
	}
	for i := 0; i < size; i++ {
		if err := elem(); err != nil {
			return err
		}
	}
	if err := p.ReadListEnd(ctx); err != nil {
		return thrift.PrependError("error reading list end: ", err)
	}
	return nil
}

func readColumnValues(ctx context.Context, p thrift.TProtocol) ([]*TColumnValue, error) {
	values := []*TColumnValue{}
	err := readList(ctx, p, func() error {
		v := &TColumnValue{}
		values = append(values, v)
		return v.Read(ctx, p)
	})
	return values, err
}

func readAttributes(ctx context.Context, p thrift.TProtocol) (map[string][]byte, error) {
	_, _, size, err := p.ReadMapBegin(ctx)
	if err != nil {
		return nil, thrift.PrependError("error reading map begin: ", err)
	}
	attrs := make(map[string][]byte, size)
	for i := 0; i < size; i++ {
		k, err := p.ReadBinary(ctx)
		if err != nil {
			return nil, err
		}
		v, err := p.ReadBinary(ctx)
		if err != nil {
			return nil, err
		}
		attrs[string(k)] = v
	}
	if err := p.ReadMapEnd(ctx); err != nil {
		return nil, thrift.PrependError("error reading map end: ", err)
	}
	return attrs, nil
}
