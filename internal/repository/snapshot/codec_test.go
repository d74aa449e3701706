package snapshot

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
	"github.com/mamadbah2/dairy/internal/repository/memory"
)

const legacyBlob = `{
  "cows": [{"id": "c1", "name": "Gauri", "cowNumber": "7", "purchasePrice": 50000, "lifeStatus": "Active"}],
  "calves": [{"id": "k1", "tagId": "T-1", "dob": "2025-12-01", "totalCost": 5000}],
  "products": [{"id": "p1", "name": "Bucket", "price": 250}],
  "labours": [{"id": "w1", "name": "Ravi", "dailySalary": 400}],
  "milkSales": [{"id": "s1", "date": "2026-03-01", "quantity": 10, "rate": 30, "totalAmount": 300}]
}`

func TestDecodeBackfillsLegacyBlob(t *testing.T) {
	data, err := Decode([]byte(legacyBlob))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !reflect.DeepEqual(data.DashboardModules, models.DefaultModules()) {
		t.Fatalf("expected canonical modules, got %+v", data.DashboardModules)
	}
	if data.Cows[0].IsBought == nil || !*data.Cows[0].IsBought {
		t.Fatalf("isBought not backfilled")
	}
	if data.Products[0].StockQty == nil || *data.Products[0].StockQty != 1 {
		t.Fatalf("stockQty not backfilled")
	}
	if data.Calves[0].LifeStatus != models.LifeActive {
		t.Fatalf("calf life status not backfilled: %q", data.Calves[0].LifeStatus)
	}
	if data.Labours[0].Attendance == nil {
		t.Fatalf("attendance not backfilled")
	}
	if data.Feeds == nil || data.Medicines == nil || data.Genetics == nil || data.Expenses == nil {
		t.Fatalf("nil collections not backfilled")
	}
	if !data.MilkSales[0].TotalAmount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("numeric amount not decoded: %s", data.MilkSales[0].TotalAmount)
	}
}

func TestDecodeKeepsStoredModules(t *testing.T) {
	raw := []byte(`{"dashboardModules": [{"id": "COW_LIST", "label": "Cows", "icon": "x", "enabled": false}]}`)
	data, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.DashboardModules) != 1 || data.DashboardModules[0].Enabled {
		t.Fatalf("stored modules overwritten: %+v", data.DashboardModules)
	}
}

func TestDecodeKeepsEmptyModuleList(t *testing.T) {
	data, err := Decode([]byte(`{"dashboardModules": []}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.DashboardModules == nil || len(data.DashboardModules) != 0 {
		t.Fatalf("stored empty module list replaced: %+v", data.DashboardModules)
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := NewRepository(store, nil)

	first, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(first.Cows) != 0 || len(first.DashboardModules) != len(models.DefaultModules()) {
		t.Fatalf("unexpected first-run snapshot %+v", first)
	}

	bought := true
	first.Cows = append(first.Cows, models.Cow{ID: "c1", Name: "Gauri", PurchasePrice: decimal.NewFromInt(42000), IsBought: &bought, LifeStatus: models.LifeActive})
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Cows) != 1 || !loaded.Cows[0].PurchasePrice.Equal(decimal.NewFromInt(42000)) {
		t.Fatalf("unexpected cows %+v", loaded.Cows)
	}
	if repo.Key() != models.StorageKey {
		t.Fatalf("unexpected key %s", repo.Key())
	}
}

func TestRepositoryFallsBackOnCorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if err := store.Put(ctx, models.StorageKey, []byte("{not json")); err != nil {
		t.Fatalf("put: %v", err)
	}

	data, err := NewRepository(store, nil).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(data, models.NewFarmData()) {
		t.Fatalf("expected default snapshot, got %+v", data)
	}
}

type brokenStore struct{ memory.Store }

func (*brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk gone") }
func (*brokenStore) Put(context.Context, string, []byte) error   { return errors.New("disk gone") }

func TestRepositoryPropagatesIOErrors(t *testing.T) {
	repo := NewRepository(&brokenStore{}, nil)
	if _, err := repo.Load(context.Background()); err == nil || errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected read error, got %v", err)
	}
	if err := repo.Save(context.Background(), models.NewFarmData()); err == nil {
		t.Fatalf("expected write error")
	}
}
