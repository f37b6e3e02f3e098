package orders

import (
	"context"
	"testing"
	"time"

	"github.com/Ant-man74/HeraWebMono/internal/awsx/awstest"
	"github.com/Ant-man74/HeraWebMono/internal/pagination"
)

const testTable = "orders-test"

func newTestStore() (*Store, *awstest.DynamoDB) {
	mock := awstest.NewDynamoDB()
	mock.AddTable(testTable, "order_id")
	mock.AddIndex(testTable, UserDateIndex, "user", "date")
	return NewStore(mock, testTable), mock
}

func TestPutGetRoundtrip(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	o := Order{
		ID:                   "o-1",
		User:                 "u-1",
		Address:              "1 Main St",
		PaymentMethod:        "card",
		TransportationMethod: "post",
		OrderLine:            []BasketItem{{Prod: "p-1", Quantity: 2}},
		Date:                 time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	if _, err := s.Put(ctx, o); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := s.Get(ctx, "o-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil {
		t.Fatal("expected order, got nil")
	}
	if got.User != "u-1" || got.Address != "1 Main St" {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if len(got.OrderLine) != 1 || got.OrderLine[0].Prod != "p-1" || got.OrderLine[0].Quantity != 2 {
		t.Fatalf("order line mismatch: %+v", got.OrderLine)
	}
	if !got.Date.Equal(o.Date) {
		t.Fatalf("date mismatch: %v != %v", got.Date, o.Date)
	}
}

func TestPutAssignsDateWhenZero(t *testing.T) {
	s, _ := newTestStore()

	saved, err := s.Put(context.Background(), Order{ID: "o-1"})
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if saved.Date.IsZero() {
		t.Fatal("expected date to be assigned")
	}
}

func TestGetAbsentReturnsNil(t *testing.T) {
	s, _ := newTestStore()

	got, err := s.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	if _, err := s.Put(ctx, Order{ID: "o-1"}); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Delete(ctx, "o-1"); err != nil {
		t.Fatalf("first Delete error: %v", err)
	}
	if err := s.Delete(ctx, "o-1"); err != nil {
		t.Fatalf("second Delete error: %v", err)
	}
	if err := s.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("Delete of absent id error: %v", err)
	}
}

func TestListPaginates(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	for _, id := range []string{"o-1", "o-2", "o-3"} {
		if _, err := s.Put(ctx, Order{ID: id}); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}

	page, err := s.List(ctx, pagination.Request{Page: 0, Size: 2})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.TotalElements != 3 {
		t.Fatalf("expected total 3, got %d", page.TotalElements)
	}

	page, err = s.List(ctx, pagination.Request{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item on last page, got %d", len(page.Items))
	}
}

func TestListByUserSortsDateDescending(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	// inserted out of date order on purpose
	dates := map[string]time.Time{
		"o-middle": time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
		"o-oldest": time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		"o-newest": time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC),
	}
	for id, date := range dates {
		if _, err := s.Put(ctx, Order{ID: id, User: "u-1", Date: date}); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}
	if _, err := s.Put(ctx, Order{ID: "o-other", User: "u-2", Date: time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	page, err := s.ListByUser(ctx, "u-1", pagination.Request{Page: 0, Size: 10})
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if page.TotalElements != 3 {
		t.Fatalf("expected 3 orders for u-1, got %d", page.TotalElements)
	}
	want := []string{"o-newest", "o-middle", "o-oldest"}
	for i, id := range want {
		if page.Items[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, page.Items[i].ID)
		}
	}
}

func TestListByUserMixedPrecisionDates(t *testing.T) {
	// the range key is stored fixed-width: a fractional-second timestamp must
	// still sort after a whole-second one from the same instant
	s, _ := newTestStore()
	ctx := context.Background()

	whole := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if _, err := s.Put(ctx, Order{ID: "o-older", User: "u-1", Date: whole}); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if _, err := s.Put(ctx, Order{ID: "o-newer", User: "u-1", Date: whole.Add(500 * time.Millisecond)}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	page, err := s.ListByUser(ctx, "u-1", pagination.Request{Page: 0, Size: 10})
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if page.Items[0].ID != "o-newer" || page.Items[1].ID != "o-older" {
		t.Fatalf("date descending violated: got %s, %s", page.Items[0].ID, page.Items[1].ID)
	}
}

func TestListByUserFollowsQueryPages(t *testing.T) {
	s, mock := newTestStore()
	mock.PageSize = 2
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		o := Order{
			ID:   "o-" + string(rune('0'+day)),
			User: "u-1",
			Date: time.Date(2024, 5, day, 12, 0, 0, 0, time.UTC),
		}
		if _, err := s.Put(ctx, o); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}

	page, err := s.ListByUser(ctx, "u-1", pagination.Request{Page: 0, Size: 10})
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if page.TotalElements != 5 {
		t.Fatalf("expected all 5 orders across query pages, got %d", page.TotalElements)
	}
	for i := 1; i < len(page.Items); i++ {
		if !page.Items[i-1].Date.After(page.Items[i].Date) {
			t.Fatalf("position %d: dates not descending", i)
		}
	}
	if got := mock.Calls(testTable).Query; got < 3 {
		t.Fatalf("expected at least 3 query pages, got %d", got)
	}
}

func TestListFollowsScanPages(t *testing.T) {
	s, mock := newTestStore()
	mock.PageSize = 2
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		if _, err := s.Put(ctx, Order{ID: "o-" + string(rune('0'+day))}); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}

	page, err := s.List(ctx, pagination.Request{Page: 0, Size: 10})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if page.TotalElements != 5 {
		t.Fatalf("expected all 5 orders across scan pages, got %d", page.TotalElements)
	}
}

func TestListByUserPaginatesAfterSort(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		o := Order{
			ID:   "o-" + string(rune('0'+day)),
			User: "u-1",
			Date: time.Date(2024, 5, day, 12, 0, 0, 0, time.UTC),
		}
		if _, err := s.Put(ctx, o); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}

	page, err := s.ListByUser(ctx, "u-1", pagination.Request{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	// page 1 of the descending sequence 5,4 | 3,2 | 1
	if page.Items[0].ID != "o-3" || page.Items[1].ID != "o-2" {
		t.Fatalf("unexpected page content: %s, %s", page.Items[0].ID, page.Items[1].ID)
	}
}
