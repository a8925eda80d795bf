package application

import (
	"context"
	"sort"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/storefront/internal/apperr"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/dispatch"
)

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// fakeRepo 内存商品仓储，软删除通过标记集合模拟
type fakeRepo struct {
	products map[uint]*domain.Product
	deleted  map[uint]bool
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: make(map[uint]*domain.Product),
		deleted:  make(map[uint]bool),
	}
}

func (r *fakeRepo) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok || r.deleted[id] {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepo) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	for id, p := range r.products {
		if p.SKU == sku && !r.deleted[id] {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetAll(ctx context.Context, category domain.Category, offset, limit int) ([]*domain.Product, int64, error) {
	var matched []*domain.Product
	for id, p := range r.products {
		if r.deleted[id] {
			continue
		}
		if category != 0 && p.Category != category {
			continue
		}
		copied := *p
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeRepo) Save(ctx context.Context, p *domain.Product) error {
	r.nextID++
	p.ID = r.nextID
	copied := *p
	r.products[p.ID] = &copied
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, p *domain.Product) error {
	copied := *p
	r.products[p.ID] = &copied
	return nil
}

func (r *fakeRepo) SoftDelete(ctx context.Context, p *domain.Product) error {
	r.deleted[p.ID] = true
	return nil
}

func newTestDispatcher(t *testing.T) (*dispatch.Dispatcher, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()

	d := dispatch.NewDispatcher()
	rules := dispatch.NewRuleRegistry()
	d.Use(dispatch.NewValidationBehavior(rules, nil))
	Register(d, rules, Deps{Repo: repo})
	return d, repo
}

func validCreate() CreateProductCommand {
	return CreateProductCommand{
		Name:     "Widget",
		Price:    price("19.99"),
		Category: domain.CategoryElectronics,
		Stock:    10,
		SKU:      "W-1",
	}
}

func TestCreateProduct(t *testing.T) {
	d, _ := newTestDispatcher(t)

	dto, err := dispatch.Send[ProductDTO](context.Background(), d, validCreate())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if dto.ID == 0 {
		t.Error("expected assigned ID")
	}
	if !dto.Price.Equal(price("19.99")) {
		t.Errorf("price = %s, want 19.99", dto.Price)
	}
}

func TestCreateProductValidation(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	longName := make([]byte, 201)
	for i := range longName {
		longName[i] = 'x'
	}

	cases := []struct {
		name   string
		mutate func(*CreateProductCommand)
	}{
		{"empty name", func(c *CreateProductCommand) { c.Name = "" }},
		{"name too long", func(c *CreateProductCommand) { c.Name = string(longName) }},
		{"zero price", func(c *CreateProductCommand) { c.Price = decimal.Zero }},
		{"negative price", func(c *CreateProductCommand) { c.Price = price("-1.00") }},
		{"empty sku", func(c *CreateProductCommand) { c.SKU = "" }},
		{"negative stock", func(c *CreateProductCommand) { c.Stock = -1 }},
		{"unknown category", func(c *CreateProductCommand) { c.Category = domain.Category(42) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := validCreate()
			tc.mutate(&cmd)
			_, err := d.Dispatch(ctx, cmd)
			if !apperr.IsValidation(err) {
				t.Errorf("expected validation failure, got: %v", err)
			}
		})
	}
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	if _, err := d.Dispatch(ctx, validCreate()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := validCreate()
	second.Name = "Another widget"
	_, err := d.Dispatch(ctx, second)
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation failure for duplicate SKU, got: %v", err)
	}
	failures := apperr.FailureMessages(err)
	if len(failures) != 1 || failures[0] != "SKU already exists" {
		t.Errorf("failures = %v", failures)
	}
}

func TestCreateProductSKUReusableAfterDelete(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	dto, err := dispatch.Send[ProductDTO](ctx, d, validCreate())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := d.Dispatch(ctx, DeleteProductCommand{ID: dto.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// 软删除后 SKU 可被重新使用
	if _, err := d.Dispatch(ctx, validCreate()); err != nil {
		t.Errorf("expected SKU to be reusable after delete, got: %v", err)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	created, err := dispatch.Send[ProductDTO](ctx, d, validCreate())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newPrice := price("29.99")
	updated, err := dispatch.Send[ProductDTO](ctx, d, UpdateProductCommand{ID: created.ID, Price: &newPrice})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if !updated.Price.Equal(newPrice) {
		t.Errorf("price = %s, want 29.99", updated.Price)
	}
	// 未提供的字段保持原值
	if updated.Name != created.Name {
		t.Errorf("name changed unexpectedly: %q", updated.Name)
	}
	if updated.SKU != created.SKU {
		t.Errorf("sku changed unexpectedly: %q", updated.SKU)
	}
}

func TestUpdateProductConditionalRules(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	created, err := dispatch.Send[ProductDTO](ctx, d, validCreate())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 字段缺省时对应规则不触发
	if _, err := d.Dispatch(ctx, UpdateProductCommand{ID: created.ID}); err != nil {
		t.Errorf("update without fields should pass: %v", err)
	}

	// 字段给出时按规则校验
	empty := ""
	if _, err := d.Dispatch(ctx, UpdateProductCommand{ID: created.ID, Name: &empty}); !apperr.IsValidation(err) {
		t.Errorf("expected validation failure for empty name, got: %v", err)
	}
	zero := decimal.Zero
	if _, err := d.Dispatch(ctx, UpdateProductCommand{ID: created.ID, Price: &zero}); !apperr.IsValidation(err) {
		t.Errorf("expected validation failure for zero price, got: %v", err)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	d, _ := newTestDispatcher(t)
	_, err := d.Dispatch(context.Background(), UpdateProductCommand{ID: 999})
	if !apperr.IsNotFound(err) {
		t.Errorf("expected not found, got: %v", err)
	}
}

func TestDeleteProductHidesFromReads(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	created, err := dispatch.Send[ProductDTO](ctx, d, validCreate())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := d.Dispatch(ctx, DeleteProductCommand{ID: created.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := d.Dispatch(ctx, GetProductByIDQuery{ID: created.ID}); !apperr.IsNotFound(err) {
		t.Errorf("expected not found after delete, got: %v", err)
	}

	list, err := dispatch.Send[ProductListDTO](ctx, d, GetAllProductsQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if list.Total != 0 {
		t.Errorf("deleted product still listed: %+v", list)
	}
}

func TestGetAllProductsFilterAndPaging(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	for i, category := range []domain.Category{domain.CategoryElectronics, domain.CategoryBooks, domain.CategoryElectronics} {
		cmd := validCreate()
		cmd.SKU = cmd.SKU + string(rune('a'+i))
		cmd.Category = category
		if _, err := d.Dispatch(ctx, cmd); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	list, err := dispatch.Send[ProductListDTO](ctx, d, GetAllProductsQuery{Category: domain.CategoryElectronics})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if list.Total != 2 {
		t.Errorf("total = %d, want 2 electronics", list.Total)
	}

	page, err := dispatch.Send[ProductListDTO](ctx, d, GetAllProductsQuery{Page: 2, Size: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 3 {
		t.Errorf("total = %d, want 3", page.Total)
	}
	if len(page.Items) != 1 {
		t.Errorf("page 2 holds %d items, want 1", len(page.Items))
	}
}

func TestGetProductByIDValidation(t *testing.T) {
	d, _ := newTestDispatcher(t)
	_, err := d.Dispatch(context.Background(), GetProductByIDQuery{ID: 0})
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation failure for zero ID, got: %v", err)
	}
}
