package domain

import "fmt"

// CardLine is a card product line (reference) in the pricing catalog, with
// one base price per thousand for each finish group it is offered in.
type CardLine struct {
	ReferenceID       string
	Name              string
	PricesPerThousand map[CardGroup]Money
}

// FlyerVariant is a flyer size/print-mode combination with its base price
// per thousand.
type FlyerVariant struct {
	Size             string
	PrintMode        string
	PricePerThousand Money
}

// SpecialFinish is an add-on treatment (perforation, embossing, die-cut...)
// priced per thousand, independent of slot occupancy and of the 1x2 rule.
type SpecialFinish struct {
	FinishID         string
	Name             string
	PricePerThousand Money
}

// Catalog is a resolved, immutable pricing snapshot handed to the engines.
// Caching and invalidation of reference data belong to the caller; the
// engines only ever see a snapshot.
type Catalog struct {
	cards    map[string]CardLine
	flyers   map[string]FlyerVariant
	finishes map[string]SpecialFinish
}

func flyerKey(size, printMode string) string {
	return size + "|" + printMode
}

// NewCatalog builds a snapshot from catalog rows.
func NewCatalog(cards []CardLine, flyers []FlyerVariant, finishes []SpecialFinish) Catalog {
	c := Catalog{
		cards:    make(map[string]CardLine, len(cards)),
		flyers:   make(map[string]FlyerVariant, len(flyers)),
		finishes: make(map[string]SpecialFinish, len(finishes)),
	}
	for _, line := range cards {
		c.cards[line.ReferenceID] = line
	}
	for _, v := range flyers {
		c.flyers[flyerKey(v.Size, v.PrintMode)] = v
	}
	for _, f := range finishes {
		c.finishes[f.FinishID] = f
	}
	return c
}

// BasePricePerThousand resolves the base price for a product spec. Absence
// is an error, never a zero price.
func (c Catalog) BasePricePerThousand(p ProductSpec) (Money, error) {
	switch p.Kind {
	case ProductCard:
		line, ok := c.cards[p.ReferenceID]
		if !ok {
			return 0, fmt.Errorf("card line %q: %w", p.ReferenceID, ErrUnresolvedCatalogEntry)
		}
		price, ok := line.PricesPerThousand[p.Group]
		if !ok {
			return 0, fmt.Errorf("card line %q group %q: %w", p.ReferenceID, p.Group, ErrUnresolvedCatalogEntry)
		}
		return price, nil
	case ProductFlyer:
		v, ok := c.flyers[flyerKey(p.Size, p.PrintMode)]
		if !ok {
			return 0, fmt.Errorf("flyer %s %s: %w", p.Size, p.PrintMode, ErrUnresolvedCatalogEntry)
		}
		return v.PricePerThousand, nil
	default:
		return 0, fmt.Errorf("product kind %q: %w", p.Kind, ErrUnresolvedCatalogEntry)
	}
}

// FinishPricePerThousand resolves a special finish unit price.
func (c Catalog) FinishPricePerThousand(finishID string) (Money, error) {
	f, ok := c.finishes[finishID]
	if !ok {
		return 0, fmt.Errorf("special finish %q: %w", finishID, ErrUnresolvedCatalogEntry)
	}
	return f.PricePerThousand, nil
}

// CardName resolves the display name of a card line.
func (c Catalog) CardName(referenceID string) (string, error) {
	line, ok := c.cards[referenceID]
	if !ok {
		return "", fmt.Errorf("card line %q: %w", referenceID, ErrUnresolvedReference)
	}
	return line.Name, nil
}

// FinishName resolves the display name of a special finish.
func (c Catalog) FinishName(finishID string) (string, error) {
	f, ok := c.finishes[finishID]
	if !ok {
		return "", fmt.Errorf("special finish %q: %w", finishID, ErrUnresolvedReference)
	}
	return f.Name, nil
}
