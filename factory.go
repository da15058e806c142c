package hincr

import (
	"context"
	"fmt"

	"github.com/challenai/hincr/client"
	c "github.com/challenai/hincr/codec"
)

// Open connects to the Thrift2 gateway and returns a handle on an existing table.
func Open(ctx context.Context, opts client.Options, tableName string) (*Table, error) {
	return OpenCodec(ctx, opts, tableName, &c.DefaultCodec{})
}

// OpenCodec is Open with a custom value codec.
func OpenCodec(ctx context.Context, opts client.Options, tableName string, codec c.Codec) (*Table, error) {
	cl, err := client.NewHBaseClient(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnection, opts.Addr, err)
	}
	t := NewTable(cl.THBaseServiceClient, cl, tableName, codec)
	if err := t.Exists(ctx); err != nil {
		cl.Close()
		return nil, err
	}
	return t, nil
}
