package client

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/challenai/hincr/thrift/hbase"
)

// Transport selects how the Thrift2 gateway is reached.
type Transport string

const (
	// TransportSocket is the gateway default: binary protocol over a plain socket.
	TransportSocket Transport = "socket"
	// TransportFramed matches a gateway started with -framed.
	TransportFramed Transport = "framed"
	// TransportHTTP matches a gateway started with -http, and most hosted HBase offerings.
	TransportHTTP Transport = "http"
)

const bufferSize = 8192

// http Header attached to HBase client
// for example, some cloud service provider HBase instances need some authrization headers.
type Header struct {
	Key, Value string
}

// ParseHeader parses a KEY=VALUE pair.
func ParseHeader(s string) (Header, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return Header{}, fmt.Errorf("header %q is not in KEY=VALUE form", s)
	}
	return Header{Key: k, Value: v}, nil
}

// RoundTrip implemnt http RoundTripper interface
type RoundTripper struct {
	Headers []Header
}

// RoundTrip implemnt http RoundTripper interface
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for _, header := range rt.Headers {
		req.Header.Add(header.Key, header.Value)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// Options configure a gateway connection.
type Options struct {
	Addr      string
	Transport Transport
	Headers   []Header
	Timeout   time.Duration
}

// Client is an open THBaseService connection. Close releases the transport.
type Client struct {
	*hbase.THBaseServiceClient
	trans thrift.TTransport
}

func (c *Client) Close() error {
	return c.trans.Close()
}

// create a new hbase client
func NewHBaseClient(opts Options) (*Client, error) {
	trans, err := newTransport(opts)
	if err != nil {
		return nil, err
	}
	if err = trans.Open(); err != nil {
		return nil, err
	}
	proto := thrift.NewTBinaryProtocolConf(trans, config(opts))
	thriftClient := thrift.NewTStandardClient(proto, proto)
	return &Client{
		THBaseServiceClient: hbase.NewTHBaseServiceClient(thriftClient),
		trans:               trans,
	}, nil
}

func config(opts Options) *thrift.TConfiguration {
	return &thrift.TConfiguration{
		ConnectTimeout: opts.Timeout,
		SocketTimeout:  opts.Timeout,
	}
}

func newTransport(opts Options) (thrift.TTransport, error) {
	switch opts.Transport {
	case TransportHTTP:
		addr := opts.Addr
		if !strings.Contains(addr, "://") {
			addr = "http://" + addr
		}
		httpClient := http.Client{
			Transport: &RoundTripper{
				Headers: opts.Headers,
			},
			Timeout: opts.Timeout,
		}
		return thrift.NewTHttpClientWithOptions(addr, thrift.THttpClientOptions{Client: &httpClient})
	case TransportFramed:
		return thrift.NewTFramedTransportConf(thrift.NewTSocketConf(opts.Addr, config(opts)), config(opts)), nil
	case TransportSocket, "":
		return thrift.NewTBufferedTransport(thrift.NewTSocketConf(opts.Addr, config(opts)), bufferSize), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", opts.Transport)
	}
}
