package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"printshop/internal/domain"
)

// CatalogRepositoryPG implements domain.CatalogRepository. The engines only
// ever see the immutable snapshot this repository assembles; refresh policy
// belongs to whoever calls Snapshot.
type CatalogRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a new catalog repository backed by PostgreSQL.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepositoryPG {
	return &CatalogRepositoryPG{pool: pool}
}

// Snapshot loads the full pricing catalog as one immutable value.
func (r *CatalogRepositoryPG) Snapshot(ctx context.Context) (domain.Catalog, error) {
	cards, flyers, finishes, err := r.Listing(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	return domain.NewCatalog(cards, flyers, finishes), nil
}

// Listing returns the raw catalog rows for display and administration.
func (r *CatalogRepositoryPG) Listing(ctx context.Context) ([]domain.CardLine, []domain.FlyerVariant, []domain.SpecialFinish, error) {
	cards, err := r.cardLines(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	flyers, err := r.flyerVariants(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	finishes, err := r.specialFinishes(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return cards, flyers, finishes, nil
}

func (r *CatalogRepositoryPG) cardLines(ctx context.Context) ([]domain.CardLine, error) {
	rows, err := r.pool.Query(ctx, `
SELECT reference_id, name, card_group, price_per_thousand
FROM card_lines
ORDER BY reference_id, card_group;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byRef := make(map[string]*domain.CardLine)
	var order []string
	for rows.Next() {
		var refID, name string
		var group domain.CardGroup
		var price domain.Money
		if err := rows.Scan(&refID, &name, &group, &price); err != nil {
			return nil, err
		}
		line, ok := byRef[refID]
		if !ok {
			line = &domain.CardLine{
				ReferenceID:       refID,
				Name:              name,
				PricesPerThousand: make(map[domain.CardGroup]domain.Money, 2),
			}
			byRef[refID] = line
			order = append(order, refID)
		}
		line.PricesPerThousand[group] = price
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lines := make([]domain.CardLine, 0, len(order))
	for _, refID := range order {
		lines = append(lines, *byRef[refID])
	}
	return lines, nil
}

func (r *CatalogRepositoryPG) flyerVariants(ctx context.Context) ([]domain.FlyerVariant, error) {
	rows, err := r.pool.Query(ctx, `
SELECT size, print_mode, price_per_thousand
FROM flyer_prices
ORDER BY size, print_mode;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []domain.FlyerVariant
	for rows.Next() {
		var v domain.FlyerVariant
		if err := rows.Scan(&v.Size, &v.PrintMode, &v.PricePerThousand); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func (r *CatalogRepositoryPG) specialFinishes(ctx context.Context) ([]domain.SpecialFinish, error) {
	rows, err := r.pool.Query(ctx, `
SELECT finish_id, name, price_per_thousand
FROM special_finishes
ORDER BY finish_id;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var finishes []domain.SpecialFinish
	for rows.Next() {
		var f domain.SpecialFinish
		if err := rows.Scan(&f.FinishID, &f.Name, &f.PricePerThousand); err != nil {
			return nil, err
		}
		finishes = append(finishes, f)
	}
	return finishes, rows.Err()
}
