package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/devbitmap/device"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPageSize is the item payload size.
	DefaultPageSize = 4096
	// MaxPageSize keeps an item below DynamoDB's 400 KB limit.
	MaxPageSize = 350 * 1024
	// DefaultConcurrency bounds parallel GetItem calls in one Get.
	DefaultConcurrency = 8
)

// ErrInvalidPageSize is returned by NewDevice for a page size outside
// (0, MaxPageSize].
var ErrInvalidPageSize = errors.New("dynamodb: invalid page size")

// Client is the subset of the DynamoDB API used by Device.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type options struct {
	pageSize    int
	concurrency int
}

// Option configures a Device.
type Option func(*options)

// WithPageSize sets the number of bytes stored per item.
func WithPageSize(n int) Option {
	return func(o *options) {
		o.pageSize = n
	}
}

// WithConcurrency bounds the GetItem calls a single Get keeps in flight.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// Device is a paged device.Device on a DynamoDB table.
//
// Puts that patch a partial page do a read-modify-write of that page and are
// not atomic with respect to other writers.
type Device struct {
	client Client
	table  string
	name   string
	opts   options
}

var _ device.Device = (*Device)(nil)

// NewDevice creates a Device storing pages of the device called name in table.
func NewDevice(client Client, table, name string, opts ...Option) (*Device, error) {
	o := options{
		pageSize:    DefaultPageSize,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.pageSize <= 0 || o.pageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, o.pageSize)
	}

	return &Device{
		client: client,
		table:  table,
		name:   name,
		opts:   o,
	}, nil
}

// PageSize returns the number of bytes per page.
func (d *Device) PageSize() int {
	return d.opts.pageSize
}

// Get reads n bytes at addr, one GetItem per touched page.
func (d *Device) Get(ctx context.Context, addr uint64, n int) ([]byte, error) {
	if n < 0 {
		return nil, device.ErrInvalidLength
	}
	out := make([]byte, n)
	if n == 0 {
		return out, nil
	}

	ps := uint64(d.opts.pageSize)
	first := addr / ps
	last := (addr + uint64(n) - 1) / ps

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.concurrency)

	for page := first; page <= last; page++ {
		g.Go(func() error {
			data, err := d.getPage(ctx, page)
			if err != nil {
				return err
			}
			// Each page writes a disjoint window of out.
			pageStart := page * ps
			lo := max(addr, pageStart)
			hi := min(addr+uint64(n), pageStart+ps)
			copy(out[lo-addr:hi-addr], data[lo-pageStart:])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Put writes p at addr, one PutItem per touched page.
func (d *Device) Put(ctx context.Context, addr uint64, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}

	ps := uint64(d.opts.pageSize)
	end := addr + uint64(len(p))

	for page := addr / ps; page*ps < end; page++ {
		pageStart := page * ps
		lo := max(addr, pageStart)
		hi := min(end, pageStart+ps)

		var data []byte
		if lo == pageStart && hi == pageStart+ps {
			data = p[lo-addr : hi-addr]
		} else {
			var err error
			if data, err = d.getPage(ctx, page); err != nil {
				return err
			}
			copy(data[lo-pageStart:hi-pageStart], p[lo-addr:hi-addr])
		}

		if err := d.putPage(ctx, page, data); err != nil {
			return err
		}
	}
	return nil
}

func (d *Device) key(page uint64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"device": &types.AttributeValueMemberS{Value: d.name},
		"page":   &types.AttributeValueMemberN{Value: strconv.FormatUint(page, 10)},
	}
}

// getPage returns a full page; missing items and short data are zero filled.
func (d *Device) getPage(ctx context.Context, page uint64) ([]byte, error) {
	resp, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.table),
		Key:            d.key(page),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get page %d of %s: %w", page, d.name, err)
	}

	data := make([]byte, d.opts.pageSize)
	if resp.Item == nil {
		return data, nil
	}
	attr, ok := resp.Item["data"].(*types.AttributeValueMemberB)
	if !ok {
		return nil, fmt.Errorf("invalid data attribute in page %d of %s", page, d.name)
	}
	copy(data, attr.Value)
	return data, nil
}

func (d *Device) putPage(ctx context.Context, page uint64, data []byte) error {
	item := d.key(page)
	item["data"] = &types.AttributeValueMemberB{Value: data}

	_, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put page %d of %s: %w", page, d.name, err)
	}
	return nil
}
