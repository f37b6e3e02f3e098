// Package awstest provides in-memory implementations of the AWS service
// interfaces in internal/awsx for use in unit tests.
package awstest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Calls counts DynamoDB operations against one table.
type Calls struct {
	Put    int
	Get    int
	Delete int
	Scan   int
	Query  int
}

type index struct {
	hashAttr  string
	rangeAttr string
}

type table struct {
	keyAttr string
	items   map[string]map[string]types.AttributeValue
	order   []string // insertion order of keys, for deterministic scans
	indexes map[string]index
	calls   Calls
}

// DynamoDB is a very small in-memory stand-in for the pieces of the DynamoDB
// API the stores use. It understands only the exact expressions the stores
// build. NOTE: intentionally minimal and not production-grade.
type DynamoDB struct {
	mu     sync.Mutex
	tables map[string]*table

	// PageSize caps the items returned per Scan or Query call and emits a
	// LastEvaluatedKey, standing in for DynamoDB's 1MB result pages. Zero
	// means unlimited.
	PageSize int
}

func NewDynamoDB() *DynamoDB {
	return &DynamoDB{tables: map[string]*table{}}
}

// AddTable registers a table with its partition key attribute name.
func (d *DynamoDB) AddTable(name, keyAttr string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables[name] = &table{
		keyAttr: keyAttr,
		items:   map[string]map[string]types.AttributeValue{},
		indexes: map[string]index{},
	}
}

// AddIndex registers a global secondary index on a table.
func (d *DynamoDB) AddIndex(tableName, indexName, hashAttr, rangeAttr string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables[tableName].indexes[indexName] = index{hashAttr: hashAttr, rangeAttr: rangeAttr}
}

// Calls returns the operation counters for a table.
func (d *DynamoDB) Calls(tableName string) Calls {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.tables[tableName]
	if !ok {
		return Calls{}
	}
	return t.calls
}

func (d *DynamoDB) tableFor(name *string) (*table, error) {
	if name == nil {
		return nil, errors.New("missing table name")
	}
	t, ok := d.tables[*name]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", *name)
	}
	return t, nil
}

func attrString(v types.AttributeValue) (string, bool) {
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", false
	}
	return s.Value, true
}

func (d *DynamoDB) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.tableFor(params.TableName)
	if err != nil {
		return nil, err
	}
	t.calls.Put++
	keyAttr, ok := params.Item[t.keyAttr]
	if !ok {
		return nil, fmt.Errorf("item missing key attribute %q", t.keyAttr)
	}
	k, ok := attrString(keyAttr)
	if !ok {
		return nil, errors.New("key attribute is not a string")
	}
	if _, exists := t.items[k]; !exists {
		t.order = append(t.order, k)
	}
	t.items[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (d *DynamoDB) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.tableFor(params.TableName)
	if err != nil {
		return nil, err
	}
	t.calls.Get++
	keyAttr, ok := params.Key[t.keyAttr]
	if !ok {
		return nil, fmt.Errorf("key missing attribute %q", t.keyAttr)
	}
	k, _ := attrString(keyAttr)
	item, ok := t.items[k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (d *DynamoDB) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.tableFor(params.TableName)
	if err != nil {
		return nil, err
	}
	t.calls.Delete++
	keyAttr, ok := params.Key[t.keyAttr]
	if !ok {
		return nil, fmt.Errorf("key missing attribute %q", t.keyAttr)
	}
	k, _ := attrString(keyAttr)
	if _, ok := t.items[k]; ok {
		delete(t.items, k)
		for i, existing := range t.order {
			if existing == k {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
	}
	// deleting an absent key succeeds, matching DynamoDB semantics
	return &dyn.DeleteItemOutput{}, nil
}

func (d *DynamoDB) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.tableFor(params.TableName)
	if err != nil {
		return nil, err
	}
	t.calls.Scan++
	items := make([]map[string]types.AttributeValue, 0, len(t.items))
	for _, k := range t.order {
		items = append(items, t.items[k])
	}
	items, lastKey := d.page(t, items, params.ExclusiveStartKey)
	return &dyn.ScanOutput{Items: items, LastEvaluatedKey: lastKey}, nil
}

// page applies ExclusiveStartKey and the configured PageSize to a result set,
// returning the slice plus the LastEvaluatedKey when more items remain.
func (d *DynamoDB) page(t *table, items []map[string]types.AttributeValue, startKey map[string]types.AttributeValue) ([]map[string]types.AttributeValue, map[string]types.AttributeValue) {
	start := 0
	if len(startKey) > 0 {
		if k, ok := attrString(startKey[t.keyAttr]); ok {
			for i, item := range items {
				if s, _ := attrString(item[t.keyAttr]); s == k {
					start = i + 1
					break
				}
			}
		}
	}
	end := len(items)
	var lastKey map[string]types.AttributeValue
	if d.PageSize > 0 && start+d.PageSize < len(items) {
		end = start + d.PageSize
		lastKey = map[string]types.AttributeValue{t.keyAttr: items[end-1][t.keyAttr]}
	}
	return items[start:end], lastKey
}

// Query supports exactly the shape the stores build: an IndexName plus a key
// condition on the index hash attribute, ordered by the index range attribute
// per ScanIndexForward.
func (d *DynamoDB) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.tableFor(params.TableName)
	if err != nil {
		return nil, err
	}
	t.calls.Query++
	if params.IndexName == nil {
		return nil, errors.New("query without index not supported")
	}
	idx, ok := t.indexes[*params.IndexName]
	if !ok {
		return nil, fmt.Errorf("unknown index %q", *params.IndexName)
	}
	if len(params.ExpressionAttributeValues) != 1 {
		return nil, errors.New("expected exactly one key condition value")
	}
	var want string
	for _, v := range params.ExpressionAttributeValues {
		want, _ = attrString(v)
	}

	var items []map[string]types.AttributeValue
	for _, k := range t.order {
		item := t.items[k]
		if hv, ok := item[idx.hashAttr]; ok {
			if s, _ := attrString(hv); s == want {
				items = append(items, item)
			}
		}
	}

	asc := params.ScanIndexForward == nil || *params.ScanIndexForward
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := attrString(items[i][idx.rangeAttr])
		b, _ := attrString(items[j][idx.rangeAttr])
		if asc {
			return a < b
		}
		return a > b
	})

	items, lastKey := d.page(t, items, params.ExclusiveStartKey)
	return &dyn.QueryOutput{Items: items, LastEvaluatedKey: lastKey}, nil
}
