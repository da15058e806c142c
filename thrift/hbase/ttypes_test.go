package hbase

import (
	"context"
	"testing"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtocol() thrift.TProtocol {
	return thrift.NewTBinaryProtocolConf(thrift.NewTMemoryBuffer(), nil)
}

func TestPutMultipleArgsWire(t *testing.T) {
	ctx := context.Background()
	p := newProtocol()
	in := &THBaseServicePutMultipleArgs{
		Table: []byte("ns:counters"),
		Tputs: []*TPut{{
			Row: []byte("row1"),
			ColumnValues: []*TColumnValue{{
				Family: []byte("cf"), Qualifier: []byte("col"), Value: []byte{0, 0, 0, 0, 0, 0, 0, 1},
			}},
			Attributes: map[string][]byte{"d": {}},
		}},
	}
	require.Nil(t, in.Write(ctx, p))

	out := &THBaseServicePutMultipleArgs{}
	require.Nil(t, out.Read(ctx, p))
	assert.Equal(t, in.Table, out.Table)
	require.Len(t, out.Tputs, 1)
	assert.Equal(t, []byte("row1"), out.Tputs[0].Row)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, out.Tputs[0].ColumnValues[0].Value)
	v, ok := out.Tputs[0].Attributes["d"]
	assert.True(t, ok)
	assert.Empty(t, v)
}

// A gateway may send fields this package does not model, such as
// TResult.stale and TColumnValue.tags; they must be skipped.
func TestResultSkipsUnknownFields(t *testing.T) {
	ctx := context.Background()
	p := newProtocol()

	require.Nil(t, writeStruct(ctx, p, "TResult", func() error {
		if err := writeBinaryField(ctx, p, "row", 1, []byte("row1")); err != nil {
			return err
		}
		err := writeField(ctx, p, "columnValues", thrift.LIST, 2, func() error {
			if err := p.WriteListBegin(ctx, thrift.STRUCT, 1); err != nil {
				return err
			}
			err := writeStruct(ctx, p, "TColumnValue", func() error {
				for id, v := range map[int16]string{1: "cf", 2: "col", 3: "v", 5: "tags"} {
					if err := writeBinaryField(ctx, p, "f", id, []byte(v)); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			return p.WriteListEnd(ctx)
		})
		if err != nil {
			return err
		}
		return writeField(ctx, p, "stale", thrift.BOOL, 3, func() error {
			return p.WriteBool(ctx, true)
		})
	}))

	r := &TResult_{}
	require.Nil(t, r.Read(ctx, p))
	assert.Equal(t, []byte("row1"), r.Row)
	require.Len(t, r.ColumnValues, 1)
	assert.Equal(t, []byte("cf"), r.ColumnValues[0].Family)
	assert.Equal(t, []byte("col"), r.ColumnValues[0].Qualifier)
	assert.Equal(t, []byte("v"), r.ColumnValues[0].Value)
}

func TestIOErrorResult(t *testing.T) {
	ctx := context.Background()
	p := newProtocol()
	msg := "table disabled"
	require.Nil(t, (&THBaseServiceVoidResult{Io: &TIOError{Message: &msg}}).Write(ctx, p))

	r := &THBaseServiceVoidResult{}
	require.Nil(t, r.Read(ctx, p))
	require.NotNil(t, r.Io)
	assert.Equal(t, "TIOError: table disabled", r.Io.Error())
}

func TestColumnIncrementDefaultAmount(t *testing.T) {
	ctx := context.Background()
	p := newProtocol()
	require.Nil(t, writeStruct(ctx, p, "TColumnIncrement", func() error {
		if err := writeBinaryField(ctx, p, "family", 1, []byte("cf")); err != nil {
			return err
		}
		return writeBinaryField(ctx, p, "qualifier", 2, []byte("col"))
	}))

	c := &TColumnIncrement{}
	require.Nil(t, c.Read(ctx, p))
	assert.Equal(t, int64(1), c.Amount)
}
