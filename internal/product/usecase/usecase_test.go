package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/clock"
	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/pkg/instrument"
	"github.com/khairicode/storebite/internal/pkg/validator"
	"github.com/khairicode/storebite/internal/product/entity"
)

func f64(v float64) *float64 { return &v }

func i32(v int32) *int32 { return &v }

// logCapture records slog output so tests can assert on audit entries.
type logCapture struct {
	mu       sync.Mutex
	messages []string
}

func (c *logCapture) Enabled(context.Context, slog.Level) bool { return true }

func (c *logCapture) Handle(_ context.Context, r slog.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, r.Message)
	return nil
}

func (c *logCapture) WithAttrs([]slog.Attr) slog.Handler { return c }

func (c *logCapture) WithGroup(string) slog.Handler { return c }

func (c *logCapture) has(msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.messages {
		if m == msg {
			return true
		}
	}
	return false
}

func captureLogs(t *testing.T) *logCapture {
	t.Helper()

	lc := &logCapture{}
	prev := slog.Default()
	slog.SetDefault(slog.New(lc))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return lc
}

type fakeRepo struct {
	products map[int64]entity.Product

	createErr error
	updateErr error
	deleteErr error
	existsErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[int64]entity.Product{}}
}

func (f *fakeRepo) ListProducts(_ context.Context, fl entity.ListFilter) ([]entity.Product, int64, error) {
	out := make([]entity.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) GetProduct(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &p, nil
}

func (f *fakeRepo) ExistsProductByName(_ context.Context, name string, excludeID int64) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, p := range f.products {
		if p.Name == name && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateProduct(_ context.Context, p entity.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeRepo) UpdateProduct(_ context.Context, p entity.Product) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.products[p.ID]; !ok {
		return goerror.ErrNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeRepo) DeleteProduct(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.products[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

type recordedEvents struct {
	created []entity.Product
	updated []entity.Product
	deleted []int64
}

func (r *recordedEvents) ProductCreated(_ context.Context, p entity.Product) {
	r.created = append(r.created, p)
}

func (r *recordedEvents) ProductUpdated(_ context.Context, p entity.Product) {
	r.updated = append(r.updated, p)
}

func (r *recordedEvents) ProductDeleted(_ context.Context, id int64, _ time.Time) {
	r.deleted = append(r.deleted, id)
}

type seqID struct{ next int64 }

func (s *seqID) Generate() int64 {
	s.next++
	return s.next
}

func newTestUsecase(t *testing.T, repo *fakeRepo) (*Usecase, *recordedEvents) {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	events := &recordedEvents{}
	uc := New(Dependency{
		RepoDB:     repo,
		RepoEvent:  events,
		Validator:  v,
		UID:        &seqID{},
		Clock:      clock.Fixed{T: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
		Instrument: instrument.NewNoop(),
	})
	return uc, events
}

func fieldMessages(t *testing.T, err error, field string) []string {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error %v is not a *goerror.Error", err)
	}
	msgs, ok := gerr.Fields()[field]
	if !ok {
		t.Fatalf("expected field %q in %v", field, gerr.Fields())
	}
	return msgs
}

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error %v is not a *goerror.Error", err)
	}
	return gerr.StatusCode()
}

func TestProductCreate(t *testing.T) {
	repo := newFakeRepo()
	uc, events := newTestUsecase(t, repo)

	out, err := uc.ProductCreate(context.Background(), ProductCreateInput{
		Name:  "Keyboard",
		Price: f64(49.90),
		Stock: i32(10),
	})
	if err != nil {
		t.Fatalf("ProductCreate: %v", err)
	}
	if out.Product.ID == 0 {
		t.Fatal("expected generated id")
	}
	if len(repo.products) != 1 {
		t.Fatalf("persisted products = %d, want 1", len(repo.products))
	}
	if len(events.created) != 1 {
		t.Fatalf("created events = %d, want 1", len(events.created))
	}
}

func TestProductCreateValidationFailure(t *testing.T) {
	repo := newFakeRepo()
	uc, _ := newTestUsecase(t, repo)

	_, err := uc.ProductCreate(context.Background(), ProductCreateInput{Price: f64(-1), Stock: i32(1)})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := statusOf(t, err); got != 422 {
		t.Fatalf("status = %d, want 422", got)
	}
	fieldMessages(t, err, "name")
	fieldMessages(t, err, "price")
	if len(repo.products) != 0 {
		t.Fatal("nothing must be persisted on validation failure")
	}
}

func TestProductCreateZeroPrice(t *testing.T) {
	repo := newFakeRepo()
	uc, _ := newTestUsecase(t, repo)

	out, err := uc.ProductCreate(context.Background(), ProductCreateInput{
		Name:  "Freebie",
		Price: f64(0),
		Stock: i32(5),
	})
	if err != nil {
		t.Fatalf("ProductCreate with price 0 must succeed: %v", err)
	}
	if out.Product.Price != 0 {
		t.Fatalf("price = %v, want 0", out.Product.Price)
	}
}

func TestProductCreateMissingNumericFields(t *testing.T) {
	repo := newFakeRepo()
	uc, _ := newTestUsecase(t, repo)

	_, err := uc.ProductCreate(context.Background(), ProductCreateInput{Name: "NoStock", Price: f64(10)})
	if err == nil {
		t.Fatal("expected validation error for omitted stock")
	}
	if got := statusOf(t, err); got != 422 {
		t.Fatalf("status = %d, want 422", got)
	}
	fieldMessages(t, err, "stock")

	_, err = uc.ProductCreate(context.Background(), ProductCreateInput{Name: "NoPrice", Stock: i32(3)})
	if err == nil {
		t.Fatal("expected validation error for omitted price")
	}
	fieldMessages(t, err, "price")

	if len(repo.products) != 0 {
		t.Fatal("nothing must be persisted on validation failure")
	}
}

func TestProductCreateDuplicateName(t *testing.T) {
	repo := newFakeRepo()
	repo.products[1] = entity.Product{ID: 1, Name: "Keyboard"}
	uc, _ := newTestUsecase(t, repo)

	_, err := uc.ProductCreate(context.Background(), ProductCreateInput{Name: "Keyboard", Price: f64(10), Stock: i32(1)})
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if got := statusOf(t, err); got != 422 {
		t.Fatalf("status = %d, want 422", got)
	}
	msgs := fieldMessages(t, err, "name")
	if len(msgs) != 1 || msgs[0] != "The name has already been taken." {
		t.Fatalf("messages = %v", msgs)
	}
	if len(repo.products) != 1 {
		t.Fatal("no record must be persisted on duplicate name")
	}
}

func TestProductCreatePriceOverflow(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = goerror.ErrOutOfRange
	uc, _ := newTestUsecase(t, repo)

	_, err := uc.ProductCreate(context.Background(), ProductCreateInput{Name: "Gold Bar", Price: f64(99999999), Stock: i32(1)})
	if err == nil {
		t.Fatal("expected overflow error")
	}
	if got := statusOf(t, err); got != 400 {
		t.Fatalf("status = %d, want 400", got)
	}
}

func TestProductDetailNotFound(t *testing.T) {
	uc, _ := newTestUsecase(t, newFakeRepo())

	_, err := uc.ProductDetail(context.Background(), ProductDetailInput{ID: 7})
	if err == nil {
		t.Fatal("expected not found")
	}
	if got := statusOf(t, err); got != 404 {
		t.Fatalf("status = %d, want 404", got)
	}
}

func TestProductUpdateKeepsOwnName(t *testing.T) {
	repo := newFakeRepo()
	repo.products[1] = entity.Product{ID: 1, Name: "Keyboard", Price: 10}
	uc, _ := newTestUsecase(t, repo)

	name := "Keyboard"
	price := 12.5
	out, err := uc.ProductUpdate(context.Background(), ProductUpdateInput{ID: 1, Name: &name, Price: &price})
	if err != nil {
		t.Fatalf("ProductUpdate with own name must succeed: %v", err)
	}
	if out.Product.Price != 12.5 {
		t.Fatalf("price = %v, want 12.5", out.Product.Price)
	}
}

func TestProductUpdateDuplicateName(t *testing.T) {
	repo := newFakeRepo()
	repo.products[1] = entity.Product{ID: 1, Name: "Keyboard"}
	repo.products[2] = entity.Product{ID: 2, Name: "Mouse"}
	uc, _ := newTestUsecase(t, repo)

	name := "Keyboard"
	_, err := uc.ProductUpdate(context.Background(), ProductUpdateInput{ID: 2, Name: &name})
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if got := statusOf(t, err); got != 422 {
		t.Fatalf("status = %d, want 422", got)
	}
}

func TestProductUpdatePartialLeavesOtherFields(t *testing.T) {
	repo := newFakeRepo()
	repo.products[1] = entity.Product{ID: 1, Name: "Keyboard", Description: "mechanical", Price: 10, Stock: 3}
	uc, _ := newTestUsecase(t, repo)

	stock := int32(9)
	out, err := uc.ProductUpdate(context.Background(), ProductUpdateInput{ID: 1, Stock: &stock})
	if err != nil {
		t.Fatalf("ProductUpdate: %v", err)
	}
	if out.Product.Name != "Keyboard" || out.Product.Price != 10 {
		t.Fatalf("untouched fields changed: %+v", out.Product)
	}
	if out.Product.Stock != 9 {
		t.Fatalf("stock = %d, want 9", out.Product.Stock)
	}
}

func TestProductUpdateNotFound(t *testing.T) {
	uc, _ := newTestUsecase(t, newFakeRepo())

	name := "X"
	_, err := uc.ProductUpdate(context.Background(), ProductUpdateInput{ID: 99, Name: &name})
	if got := statusOf(t, err); got != 404 {
		t.Fatalf("status = %d, want 404", got)
	}
}

func TestProductDeleteReferenced(t *testing.T) {
	repo := newFakeRepo()
	repo.products[1] = entity.Product{ID: 1, Name: "Keyboard"}
	repo.deleteErr = goerror.ErrReferenced
	uc, events := newTestUsecase(t, repo)

	err := uc.ProductDelete(context.Background(), ProductDeleteInput{ID: 1})
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if got := statusOf(t, err); got != 409 {
		t.Fatalf("status = %d, want 409", got)
	}
	if _, ok := repo.products[1]; !ok {
		t.Fatal("referenced product must remain present")
	}
	if len(events.deleted) != 0 {
		t.Fatal("no delete event must be published on conflict")
	}
}

func TestProductDelete(t *testing.T) {
	repo := newFakeRepo()
	repo.products[1] = entity.Product{ID: 1, Name: "Keyboard"}
	uc, events := newTestUsecase(t, repo)

	if err := uc.ProductDelete(context.Background(), ProductDeleteInput{ID: 1}); err != nil {
		t.Fatalf("ProductDelete: %v", err)
	}
	if len(repo.products) != 0 {
		t.Fatal("product must be removed")
	}
	if len(events.deleted) != 1 {
		t.Fatalf("deleted events = %d, want 1", len(events.deleted))
	}
}

func TestProductCreateLogsSnapshot(t *testing.T) {
	logs := captureLogs(t)
	uc, _ := newTestUsecase(t, newFakeRepo())

	_, err := uc.ProductCreate(context.Background(), ProductCreateInput{
		Name:  "Keyboard",
		Price: f64(10),
		Stock: i32(2),
	})
	if err != nil {
		t.Fatalf("ProductCreate: %v", err)
	}
	if !logs.has("product created") {
		t.Fatalf("expected a 'product created' audit log, got %v", logs.messages)
	}
}

func TestProductDeleteLogsSnapshot(t *testing.T) {
	logs := captureLogs(t)
	repo := newFakeRepo()
	repo.products[1] = entity.Product{ID: 1, Name: "Keyboard"}
	uc, _ := newTestUsecase(t, repo)

	if err := uc.ProductDelete(context.Background(), ProductDeleteInput{ID: 1}); err != nil {
		t.Fatalf("ProductDelete: %v", err)
	}
	if !logs.has("product deleted") {
		t.Fatalf("expected a 'product deleted' audit log, got %v", logs.messages)
	}
}

func TestProductDeleteNotFound(t *testing.T) {
	uc, events := newTestUsecase(t, newFakeRepo())

	err := uc.ProductDelete(context.Background(), ProductDeleteInput{ID: 42})
	if got := statusOf(t, err); got != 404 {
		t.Fatalf("status = %d, want 404", got)
	}
	if len(events.deleted) != 0 {
		t.Fatal("no delete event must be published when the product is missing")
	}
}

func TestProductList(t *testing.T) {
	repo := newFakeRepo()
	repo.products[1] = entity.Product{ID: 1, Name: "Keyboard"}
	repo.products[2] = entity.Product{ID: 2, Name: "Mouse"}
	uc, _ := newTestUsecase(t, repo)

	out, err := uc.ProductList(context.Background(), ProductListInput{})
	if err != nil {
		t.Fatalf("ProductList: %v", err)
	}
	if out.Total != 2 || len(out.Products) != 2 {
		t.Fatalf("total = %d, products = %d", out.Total, len(out.Products))
	}
	if out.Page != defaultPage || out.Limit != defaultLimit {
		t.Fatalf("defaults not applied: page=%d limit=%d", out.Page, out.Limit)
	}
}
