package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Ant-man74/HeraWebMono/internal/awsx"
	"github.com/Ant-man74/HeraWebMono/internal/pagination"
)

// UserDateIndex is the GSI keyed by user with date as the range key.
const UserDateIndex = "user-date-index"

// dateKeyFormat is the fixed-width form the date range key is stored in.
// RFC3339Nano drops trailing zeros, so mixed-precision timestamps would not
// sort chronologically under DynamoDB's byte-order string comparison
// ("...00Z" > "...00.5Z"). Dates are stored in UTC, so the width is constant.
const dateKeyFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Store encapsulates operations on the orders table.
type Store struct {
	client  awsx.DynamoDBAPI
	table   string
	nowFunc func() time.Time
}

// NewStore creates a new orders Store.
func NewStore(client awsx.DynamoDBAPI, table string) *Store {
	return &Store{
		client:  client,
		table:   table,
		nowFunc: time.Now,
	}
}

// Put persists the order, overwriting any existing item with the same id.
// order.ID must be set by the caller.
func (s *Store) Put(ctx context.Context, o Order) (Order, error) {
	if o.Date.IsZero() {
		o.Date = s.nowFunc()
	}
	o.Date = o.Date.UTC()

	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return Order{}, fmt.Errorf("marshal order: %w", err)
	}
	item["date"] = &types.AttributeValueMemberS{Value: o.Date.Format(dateKeyFormat)}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.table,
		Item:      item,
	})
	if err != nil {
		return Order{}, fmt.Errorf("put order: %w", err)
	}
	return o, nil
}

// Get fetches an order by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, id string) (*Order, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.table,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// Delete removes an order by id. Deleting an absent id is a no-op success.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.table,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// List returns one page of all orders in scan order, unless a date sort was
// requested.
func (s *Store) List(ctx context.Context, req pagination.Request) (pagination.Page[Order], error) {
	items, err := s.scanAll(ctx)
	if err != nil {
		return pagination.Page[Order]{}, err
	}
	applySort(items, req)
	return pagination.Paginate(items, req), nil
}

// ListByUser returns one page of the user's orders sorted by date descending.
// Pagination applies after the sort.
func (s *Store) ListByUser(ctx context.Context, user string, req pagination.Request) (pagination.Page[Order], error) {
	keyCond := "#u = :u"
	forward := false

	var items []Order
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Query(ctx, &dyn.QueryInput{
			TableName:                &s.table,
			IndexName:                awsString(UserDateIndex),
			KeyConditionExpression:   &keyCond,
			ExpressionAttributeNames: map[string]string{"#u": "user"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":u": &types.AttributeValueMemberS{Value: user},
			},
			ScanIndexForward:  &forward,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return pagination.Page[Order]{}, fmt.Errorf("query orders by user: %w", err)
		}
		var page []Order
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return pagination.Page[Order]{}, fmt.Errorf("unmarshal orders: %w", err)
		}
		items = append(items, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return pagination.Paginate(items, req), nil
}

func (s *Store) scanAll(ctx context.Context) ([]Order, error) {
	var items []Order
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dyn.ScanInput{
			TableName:         &s.table,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan orders: %w", err)
		}
		var page []Order
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal orders: %w", err)
		}
		items = append(items, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return items, nil
}

// applySort honors the sort properties that exist on an order; anything else
// keeps scan order. Properties apply in reverse so the first requested one
// ends up primary under the stable sorts.
func applySort(items []Order, req pagination.Request) {
	for i := len(req.Sort) - 1; i >= 0; i-- {
		srt := req.Sort[i]
		if srt.Field != "date" {
			continue
		}
		desc := srt.Desc
		sort.SliceStable(items, func(i, j int) bool {
			if desc {
				return items[i].Date.After(items[j].Date)
			}
			return items[i].Date.Before(items[j].Date)
		})
	}
}

func awsString(s string) *string { return &s }
