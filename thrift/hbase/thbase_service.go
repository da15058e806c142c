package hbase

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// THBaseServiceClient calls the subset of THBaseService hincr needs.
type THBaseServiceClient struct {
	c thrift.TClient
}

func NewTHBaseServiceClient(c thrift.TClient) *THBaseServiceClient {
	return &THBaseServiceClient{c: c}
}

func (p *THBaseServiceClient) call(ctx context.Context, method string, args, result thrift.TStruct) error {
	_, err := p.c.Call(ctx, method, args, result)
	return err
}

// TableExists reports whether the table exists.
func (p *THBaseServiceClient) TableExists(ctx context.Context, tableName *TTableName) (bool, error) {
	args := THBaseServiceTableExistsArgs{TableName: tableName}
	var result THBaseServiceTableExistsResult
	if err := p.call(ctx, "tableExists", &args, &result); err != nil {
		return false, err
	}
	if result.Io != nil {
		return false, result.Io
	}
	if result.Success == nil {
		return false, thrift.NewTApplicationException(thrift.MISSING_RESULT, "tableExists failed: unknown result")
	}
	return *result.Success, nil
}

// Get reads a single row. A row that does not exist yields a result with
// no column values.
func (p *THBaseServiceClient) Get(ctx context.Context, table []byte, tget *TGet) (*TResult_, error) {
	args := THBaseServiceGetArgs{Table: table, Tget: tget}
	var result THBaseServiceGetResult
	if err := p.call(ctx, "get", &args, &result); err != nil {
		return nil, err
	}
	if result.Io != nil {
		return nil, result.Io
	}
	if result.Success == nil {
		return nil, thrift.NewTApplicationException(thrift.MISSING_RESULT, "get failed: unknown result")
	}
	return result.Success, nil
}

// PutMultiple sends a batch of puts in one call.
func (p *THBaseServiceClient) PutMultiple(ctx context.Context, table []byte, tputs []*TPut) error {
	args := THBaseServicePutMultipleArgs{Table: table, Tputs: tputs}
	var result THBaseServiceVoidResult
	if err := p.call(ctx, "putMultiple", &args, &result); err != nil {
		return err
	}
	if result.Io != nil {
		return result.Io
	}
	return nil
}

func (p *THBaseServiceClient) Increment(ctx context.Context, table []byte, tincrement *TIncrement) (*TResult_, error) {
	args := THBaseServiceIncrementArgs{Table: table, Tincrement: tincrement}
	var result THBaseServiceGetResult
	if err := p.call(ctx, "increment", &args, &result); err != nil {
		return nil, err
	}
	if result.Io != nil {
		return nil, result.Io
	}
	if result.Success == nil {
		return nil, thrift.NewTApplicationException(thrift.MISSING_RESULT, "increment failed: unknown result")
	}
	return result.Success, nil
}

type THBaseServiceTableExistsArgs struct {
	TableName *TTableName
}

func (a *THBaseServiceTableExistsArgs) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "tableExists_args", func() error {
		return writeField(ctx, p, "tableName", thrift.STRUCT, 1, func() error {
			return a.TableName.Write(ctx, p)
		})
	})
}

func (a *THBaseServiceTableExistsArgs) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		if id != 1 || typ != thrift.STRUCT {
			return false, nil
		}
		a.TableName = &TTableName{}
		return true, a.TableName.Read(ctx, p)
	})
}

type THBaseServiceTableExistsResult struct {
	Success *bool
	Io      *TIOError
}

func (r *THBaseServiceTableExistsResult) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "tableExists_result", func() error {
		if r.Success != nil {
			err := writeField(ctx, p, "success", thrift.BOOL, 0, func() error {
				return p.WriteBool(ctx, *r.Success)
			})
			if err != nil {
				return err
			}
		}
		return writeIOError(ctx, p, r.Io)
	})
}

func (r *THBaseServiceTableExistsResult) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 0 && typ == thrift.BOOL:
			ok, err := p.ReadBool(ctx)
			r.Success = &ok
			return true, err
		case id == 1 && typ == thrift.STRUCT:
			r.Io = &TIOError{}
			return true, r.Io.Read(ctx, p)
		}
		return false, nil
	})
}

type THBaseServiceGetArgs struct {
	Table []byte
	Tget  *TGet
}

func (a *THBaseServiceGetArgs) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "get_args", func() error {
		if err := writeBinaryField(ctx, p, "table", 1, a.Table); err != nil {
			return err
		}
		return writeField(ctx, p, "tget", thrift.STRUCT, 2, func() error {
			return a.Tget.Write(ctx, p)
		})
	})
}

func (a *THBaseServiceGetArgs) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typ == thrift.STRING:
			a.Table, err = p.ReadBinary(ctx)
		case id == 2 && typ == thrift.STRUCT:
			a.Tget = &TGet{}
			err = a.Tget.Read(ctx, p)
		default:
			return false, nil
		}
		return true, err
	})
}

// THBaseServiceGetResult is the result of both get and increment, which
// share the TResult return type.
type THBaseServiceGetResult struct {
	Success *TResult_
	Io      *TIOError
}

func (r *THBaseServiceGetResult) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "get_result", func() error {
		if r.Success != nil {
			err := writeField(ctx, p, "success", thrift.STRUCT, 0, func() error {
				return r.Success.Write(ctx, p)
			})
			if err != nil {
				return err
			}
		}
		return writeIOError(ctx, p, r.Io)
	})
}

func (r *THBaseServiceGetResult) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 0 && typ == thrift.STRUCT:
			r.Success = &TResult_{}
			return true, r.Success.Read(ctx, p)
		case id == 1 && typ == thrift.STRUCT:
			r.Io = &TIOError{}
			return true, r.Io.Read(ctx, p)
		}
		return false, nil
	})
}

type THBaseServicePutMultipleArgs struct {
	Table []byte
	Tputs []*TPut
}

func (a *THBaseServicePutMultipleArgs) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "putMultiple_args", func() error {
		if err := writeBinaryField(ctx, p, "table", 1, a.Table); err != nil {
			return err
		}
		return writeField(ctx, p, "tputs", thrift.LIST, 2, func() error {
			if err := p.WriteListBegin(ctx, thrift.STRUCT, len(a.Tputs)); err != nil {
				return thrift.PrependError("error writing list begin: ", err)
			}
			for _, put := range a.Tputs {
				if err := put.Write(ctx, p); err != nil {
					return err
				}
			}
			return p.WriteListEnd(ctx)
		})
	})
}

func (a *THBaseServicePutMultipleArgs) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typ == thrift.STRING:
			a.Table, err = p.ReadBinary(ctx)
		case id == 2 && typ == thrift.LIST:
			err = readList(ctx, p, func() error {
				put := &TPut{}
				a.Tputs = append(a.Tputs, put)
				return put.Read(ctx, p)
			})
		default:
			return false, nil
		}
		return true, err
	})
}

type THBaseServiceIncrementArgs struct {
	Table      []byte
	Tincrement *TIncrement
}

func (a *THBaseServiceIncrementArgs) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "increment_args", func() error {
		if err := writeBinaryField(ctx, p, "table", 1, a.Table); err != nil {
			return err
		}
		return writeField(ctx, p, "tincrement", thrift.STRUCT, 2, func() error {
			return a.Tincrement.Write(ctx, p)
		})
	})
}

func (a *THBaseServiceIncrementArgs) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		var err error
		switch {
		case id == 1 && typ == thrift.STRING:
			a.Table, err = p.ReadBinary(ctx)
		case id == 2 && typ == thrift.STRUCT:
			a.Tincrement = &TIncrement{}
			err = a.Tincrement.Read(ctx, p)
		default:
			return false, nil
		}
		return true, err
	})
}

// THBaseServiceVoidResult is the result of putMultiple.
type THBaseServiceVoidResult struct {
	Io *TIOError
}

func (r *THBaseServiceVoidResult) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "void_result", func() error {
		return writeIOError(ctx, p, r.Io)
	})
}

func (r *THBaseServiceVoidResult) Read(ctx context.Context, p thrift.TProtocol) error {
	return readStruct(ctx, p, func(id int16, typ thrift.TType) (bool, error) {
		if id != 1 || typ != thrift.STRUCT {
			return false, nil
		}
		r.Io = &TIOError{}
		return true, r.Io.Read(ctx, p)
	})
}

func writeIOError(ctx context.Context, p thrift.TProtocol, io *TIOError) error {
	if io == nil {
		return nil
	}
	return writeField(ctx, p, "io", thrift.STRUCT, 1, func() error {
		return io.Write(ctx, p)
	})
}
