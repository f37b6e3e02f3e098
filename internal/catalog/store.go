package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Ant-man74/HeraWebMono/internal/awsx"
	"github.com/Ant-man74/HeraWebMono/internal/pagination"
)

// Store encapsulates operations on the products table.
//
// The filter queries scan and apply their predicates client-side: DynamoDB
// filter expressions cannot express a case-insensitive substring match, so
// all predicates live in one place instead of being split across the wire
// and the client.
type Store struct {
	client awsx.DynamoDBAPI
	table  string
}

// NewStore creates a new products Store.
func NewStore(client awsx.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

// Put persists the product, overwriting any existing item with the same id.
// p.ID must be set by the caller.
func (s *Store) Put(ctx context.Context, p Product) (Product, error) {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return Product{}, fmt.Errorf("marshal product: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.table,
		Item:      item,
	})
	if err != nil {
		return Product{}, fmt.Errorf("put product: %w", err)
	}
	return p, nil
}

// Get fetches a product by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, id string) (*Product, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.table,
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var p Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	return &p, nil
}

// Delete removes a product by id. Deleting an absent id is a no-op success.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.table,
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// List returns one page of all products in scan order, unless a supported
// sort was requested.
func (s *Store) List(ctx context.Context, req pagination.Request) (pagination.Page[Product], error) {
	return s.listFiltered(ctx, req, nil)
}

// ListByCategory returns products carrying the given category label.
func (s *Store) ListByCategory(ctx context.Context, category string, req pagination.Request) (pagination.Page[Product], error) {
	return s.listFiltered(ctx, req, func(p Product) bool {
		return hasAnyCategory(p, []string{category})
	})
}

// ListByBasket returns products whose id is in ids, in scan order. Callers
// needing basket order must resolve per item instead.
func (s *Store) ListByBasket(ctx context.Context, ids []string, req pagination.Request) (pagination.Page[Product], error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return s.listFiltered(ctx, req, func(p Product) bool {
		_, ok := want[p.ID]
		return ok
	})
}

// ListByName returns products whose name contains name, case-insensitively.
func (s *Store) ListByName(ctx context.Context, name string, req pagination.Request) (pagination.Page[Product], error) {
	return s.listFiltered(ctx, req, func(p Product) bool {
		return nameContains(p, name)
	})
}

// ListFiltered applies category membership, case-insensitive name substring
// match and the closed price interval [from, to] conjunctively. Empty
// categories or an empty name leave that predicate unconstrained.
func (s *Store) ListFiltered(ctx context.Context, categories []string, name string, from, to float64, req pagination.Request) (pagination.Page[Product], error) {
	return s.listFiltered(ctx, req, func(p Product) bool {
		if len(categories) > 0 && !hasAnyCategory(p, categories) {
			return false
		}
		if name != "" && !nameContains(p, name) {
			return false
		}
		return p.Price >= from && p.Price <= to
	})
}

func (s *Store) listFiltered(ctx context.Context, req pagination.Request, keep func(Product) bool) (pagination.Page[Product], error) {
	items, err := s.scanAll(ctx)
	if err != nil {
		return pagination.Page[Product]{}, err
	}
	if keep != nil {
		filtered := items[:0]
		for _, p := range items {
			if keep(p) {
				filtered = append(filtered, p)
			}
		}
		items = filtered
	}
	applySort(items, req)
	return pagination.Paginate(items, req), nil
}

func (s *Store) scanAll(ctx context.Context) ([]Product, error) {
	var items []Product
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dyn.ScanInput{
			TableName:         &s.table,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan products: %w", err)
		}
		var page []Product
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal products: %w", err)
		}
		items = append(items, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return items, nil
}

func hasAnyCategory(p Product, categories []string) bool {
	for _, have := range p.Categories {
		for _, want := range categories {
			if have == want {
				return true
			}
		}
	}
	return false
}

func nameContains(p Product, name string) bool {
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(name))
}

// applySort honors the sort properties that exist on a product; anything else
// keeps scan order. Properties apply in reverse so the first requested one
// ends up primary under the stable sorts.
func applySort(items []Product, req pagination.Request) {
	for i := len(req.Sort) - 1; i >= 0; i-- {
		srt := req.Sort[i]
		desc := srt.Desc
		switch srt.Field {
		case "name":
			sort.SliceStable(items, func(i, j int) bool {
				if desc {
					return items[i].Name > items[j].Name
				}
				return items[i].Name < items[j].Name
			})
		case "price":
			sort.SliceStable(items, func(i, j int) bool {
				if desc {
					return items[i].Price > items[j].Price
				}
				return items[i].Price < items[j].Price
			})
		}
	}
}
