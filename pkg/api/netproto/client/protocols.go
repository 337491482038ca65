package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"

	npapi "github.com/els0r/netproto/pkg/api/netproto"
	"github.com/els0r/netproto/pkg/protocols"
	"github.com/els0r/telemetry/logging"
	"github.com/fako1024/httpc"
	jsoniter "github.com/json-iterator/go"
)

// LookupByName resolves name (or an alias) on the remote server. A nil record with a nil
// error means the protocol is unknown
func (c *Client) LookupByName(ctx context.Context, name string) (*protocols.Record, error) {
	if skip, err := protocols.CheckName(name); skip {
		return nil, err
	}
	return c.lookup(ctx, npapi.ByNameRoute+"/"+url.PathEscape(name))
}

// LookupByNumber resolves number on the remote server. A nil record with a nil error means
// the protocol is unknown
func (c *Client) LookupByNumber(ctx context.Context, number int) (*protocols.Record, error) {
	if skip, err := protocols.CheckNumber(int64(number)); skip {
		return nil, err
	}
	return c.lookup(ctx, npapi.ByNumberRoute+"/"+strconv.Itoa(number))
}

func (c *Client) lookup(ctx context.Context, path string) (*protocols.Record, error) {
	var res = new(npapi.ProtocolResponse)

	req := c.Modify(ctx,
		httpc.NewWithClient(http.MethodGet, c.NewURL(path), c.Client()).
			ParseJSON(res).
			ErrorFn(responseError),
	)
	if err := req.RunWithContext(ctx); err != nil {
		return nil, err
	}
	if !res.Found || res.Protocol == nil {
		return nil, nil
	}
	return res.Protocol.Record()
}

// List fetches the full protocol database of the remote server, in database order, along
// with its fingerprint. It implements protocols.Lister
func (c *Client) List(ctx context.Context) ([]*protocols.Record, string, error) {
	var res = new(npapi.ListResponse)

	req := c.Modify(ctx,
		httpc.NewWithClient(http.MethodGet, c.NewURL(npapi.ProtocolsRoute), c.Client()).
			ParseJSON(res).
			ErrorFn(responseError),
	)
	if err := req.RunWithContext(ctx); err != nil {
		return nil, "", err
	}

	records := make([]*protocols.Record, 0, len(res.Protocols))
	for _, e := range res.Protocols {
		r, err := e.Record()
		if err != nil {
			return nil, "", err
		}
		records = append(records, r)
	}
	return records, res.Fingerprint, nil
}

// ByName implements protocols.Directory
func (c *Client) ByName(name string) (*protocols.Record, error) {
	return c.LookupByName(context.Background(), name)
}

// ByNumber implements protocols.Directory
func (c *Client) ByNumber(number int) (*protocols.Record, error) {
	return c.LookupByNumber(context.Background(), number)
}

// All implements protocols.Enumerator. The database is fetched once per walk; a failed
// fetch ends the walk without records. Use List to observe such failures
func (c *Client) All() iter.Seq[*protocols.Record] {
	return func(yield func(*protocols.Record) bool) {
		ctx := context.Background()

		records, _, err := c.List(ctx)
		if err != nil {
			logging.FromContext(ctx).With("addr", c.Addr().String(), "error", err).Error("failed to list remote protocols")
			return
		}
		for _, r := range records {
			if !yield(r) {
				return
			}
		}
	}
}

// responseError turns a rejected request into an error. The 400 and 501 answers of the
// server are mapped to the errors of the protocols package
func responseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: failed to read response body: %w", resp.Status, err)
	}

	var res npapi.Response
	if decodeErr := jsoniter.NewDecoder(bytes.NewReader(body)).Decode(&res); decodeErr != nil || res.Error == "" {
		res.Error = fmt.Sprintf("%.512s", body)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", protocols.ErrInvalidArgument, res.Error)
	case http.StatusNotImplemented:
		return fmt.Errorf("%w: %s", protocols.ErrUnsupported, res.Error)
	}
	return fmt.Errorf("%s [body=%s]", resp.Status, res.Error)
}
