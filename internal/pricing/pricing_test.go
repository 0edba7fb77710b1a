package pricing

import (
	"errors"
	"testing"

	"printshop/internal/domain"
)

func testCatalog() domain.Catalog {
	return domain.NewCatalog(
		[]domain.CardLine{
			{
				ReferenceID: "linea-300",
				Name:        "Línea 300",
				PricesPerThousand: map[domain.CardGroup]domain.Money{
					domain.GroupGloss:        15000,
					domain.GroupMatteReserve: 18000,
				},
			},
		},
		[]domain.FlyerVariant{
			{Size: "10x15", PrintMode: "frente", PricePerThousand: 9000},
			{Size: "10x15", PrintMode: "frente_dorso", PricePerThousand: 14000},
		},
		[]domain.SpecialFinish{
			{FinishID: "perforado", Name: "Perforado", PricePerThousand: 2000},
			{FinishID: "troquelado", Name: "Troquelado", PricePerThousand: 3500},
		},
	)
}

func cardSpec() domain.JobSpec {
	return domain.JobSpec{
		Product: domain.ProductSpec{
			Kind:        domain.ProductCard,
			ReferenceID: "linea-300",
			Group:       domain.GroupGloss,
		},
		QuantityThousands: 4,
		SlotOccupancy:     1,
	}
}

func TestComputeTotal_PlainCard(t *testing.T) {
	spec := cardSpec()
	spec.QuantityThousands = 3
	spec.SlotOccupancy = 2

	total, err := ComputeTotal(spec, testCatalog())
	if err != nil {
		t.Fatalf("ComputeTotal() error = %v", err)
	}
	if want := domain.Money(15000 * 3 * 2); total != want {
		t.Fatalf("ComputeTotal() = %d, want %d", total, want)
	}
}

func TestComputeTotal_HalvedWithFinish(t *testing.T) {
	// 1x2 halves the base cost only: 15000×2×1 + 2000×4 = 38000.
	spec := cardSpec()
	spec.Halved = true
	spec.Finishes = []domain.FinishSelection{{FinishID: "perforado"}}

	total, err := ComputeTotal(spec, testCatalog())
	if err != nil {
		t.Fatalf("ComputeTotal() error = %v", err)
	}
	if total != 38000 {
		t.Fatalf("ComputeTotal() = %d, want 38000", total)
	}
}

func TestComputeTotal_HalvingNeverTouchesFinishes(t *testing.T) {
	spec := cardSpec()
	spec.SlotOccupancy = 3
	spec.Finishes = []domain.FinishSelection{
		{FinishID: "perforado"},
		{FinishID: "troquelado"},
	}

	full, err := ComputeBreakdown(spec, testCatalog())
	if err != nil {
		t.Fatalf("ComputeBreakdown(full) error = %v", err)
	}

	spec.Halved = true
	halved, err := ComputeBreakdown(spec, testCatalog())
	if err != nil {
		t.Fatalf("ComputeBreakdown(halved) error = %v", err)
	}

	if halved.FinishesCost != full.FinishesCost {
		t.Fatalf("finishes cost changed under 1x2: %d vs %d", halved.FinishesCost, full.FinishesCost)
	}
	if want := full.BaseCost / 2; halved.BaseCost != want {
		t.Fatalf("halved base = %d, want %d", halved.BaseCost, want)
	}
	if want := full.Total - full.BaseCost/2; halved.Total != want {
		t.Fatalf("halved total = %d, want %d", halved.Total, want)
	}
}

func TestComputeTotal_FinishesIgnoreSlotOccupancy(t *testing.T) {
	spec := cardSpec()
	spec.Finishes = []domain.FinishSelection{{FinishID: "perforado"}}

	one, err := ComputeBreakdown(spec, testCatalog())
	if err != nil {
		t.Fatalf("ComputeBreakdown() error = %v", err)
	}

	spec.SlotOccupancy = 4
	four, err := ComputeBreakdown(spec, testCatalog())
	if err != nil {
		t.Fatalf("ComputeBreakdown() error = %v", err)
	}

	if one.FinishesCost != four.FinishesCost {
		t.Fatalf("finishes cost depends on occupancy: %d vs %d", one.FinishesCost, four.FinishesCost)
	}
	if four.BaseCost != one.BaseCost*4 {
		t.Fatalf("base cost = %d, want %d", four.BaseCost, one.BaseCost*4)
	}
}

func TestComputeTotal_DiscountClampsAtZero(t *testing.T) {
	tests := []struct {
		name     string
		discount domain.Money
		want     domain.Money
	}{
		{"no discount", 0, 60000},
		{"partial", 10000, 50000},
		{"full comp", 60000, 0},
		{"over total clamps", 999999, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := cardSpec()
			spec.Discount = tc.discount

			total, err := ComputeTotal(spec, testCatalog())
			if err != nil {
				t.Fatalf("ComputeTotal() error = %v", err)
			}
			if total != tc.want {
				t.Fatalf("ComputeTotal() = %d, want %d", total, tc.want)
			}
		})
	}
}

func TestComputeTotal_Flyer(t *testing.T) {
	spec := domain.JobSpec{
		Product: domain.ProductSpec{
			Kind:      domain.ProductFlyer,
			Size:      "10x15",
			PrintMode: "frente_dorso",
		},
		QuantityThousands: 2,
		SlotOccupancy:     1,
	}

	total, err := ComputeTotal(spec, testCatalog())
	if err != nil {
		t.Fatalf("ComputeTotal() error = %v", err)
	}
	if total != 28000 {
		t.Fatalf("ComputeTotal() = %d, want 28000", total)
	}
}

func TestComputeTotal_HalvedOddProductRoundsUp(t *testing.T) {
	spec := cardSpec()
	spec.QuantityThousands = 1
	spec.Product.Group = domain.GroupMatteReserve

	catalog := domain.NewCatalog(
		[]domain.CardLine{{
			ReferenceID:       "linea-300",
			Name:              "Línea 300",
			PricesPerThousand: map[domain.CardGroup]domain.Money{domain.GroupMatteReserve: 15001},
		}},
		nil, nil,
	)
	spec.Halved = true

	total, err := ComputeTotal(spec, catalog)
	if err != nil {
		t.Fatalf("ComputeTotal() error = %v", err)
	}
	if total != 7501 {
		t.Fatalf("ComputeTotal() = %d, want 7501", total)
	}
}

func TestComputeTotal_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.JobSpec)
		wantErr error
	}{
		{
			name:    "zero quantity",
			mutate:  func(s *domain.JobSpec) { s.QuantityThousands = 0 },
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name:    "zero occupancy",
			mutate:  func(s *domain.JobSpec) { s.SlotOccupancy = 0 },
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name:    "unknown card line",
			mutate:  func(s *domain.JobSpec) { s.Product.ReferenceID = "nope" },
			wantErr: domain.ErrUnresolvedCatalogEntry,
		},
		{
			name:    "unknown flyer variant",
			mutate:  func(s *domain.JobSpec) { s.Product = domain.ProductSpec{Kind: domain.ProductFlyer, Size: "A4", PrintMode: "frente"} },
			wantErr: domain.ErrUnresolvedCatalogEntry,
		},
		{
			name: "unknown finish never treated as free",
			mutate: func(s *domain.JobSpec) {
				s.Finishes = []domain.FinishSelection{{FinishID: "laminado"}}
			},
			wantErr: domain.ErrUnresolvedCatalogEntry,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := cardSpec()
			tc.mutate(&spec)

			if _, err := ComputeTotal(spec, testCatalog()); !errors.Is(err, tc.wantErr) {
				t.Fatalf("ComputeTotal() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
