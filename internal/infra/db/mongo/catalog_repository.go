package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleetquote/internal/app/policies"
	domainquote "fleetquote/internal/domain/quote"
	"fleetquote/internal/domain/shared/money"
)

// CatalogRepository persists per-vehicle pricing catalogs.
type CatalogRepository struct {
	col *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{col: db.Collection("pricing_catalogs")}
}

func (r *CatalogRepository) CatalogByVehicle(ctx context.Context, vehicleID string) (domainquote.Catalog, error) {
	var doc catalogDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": vehicleID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domainquote.Catalog{}, fmt.Errorf("%w: %s", policies.ErrCatalogNotFound, vehicleID)
		}
		return domainquote.Catalog{}, err
	}
	return doc.toCatalog(), nil
}

func (r *CatalogRepository) Save(ctx context.Context, catalog domainquote.Catalog) error {
	doc := newCatalogDocument(catalog)
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

type catalogDocument struct {
	ID       string          `bson:"_id"`
	Currency string          `bson:"currency"`
	Rules    []ruleDocument  `bson:"rules"`
	Offers   []offerDocument `bson:"offers,omitempty"`
	Extras   []extraDocument `bson:"extras,omitempty"`
}

type ruleDocument struct {
	ID               string         `bson:"id"`
	Name             string         `bson:"name,omitempty"`
	StartMonth       int            `bson:"start_month"`
	StartDay         *int           `bson:"start_day,omitempty"`
	EndMonth         int            `bson:"end_month"`
	EndDay           *int           `bson:"end_day,omitempty"`
	PricePerDayCents int64          `bson:"price_per_day_cents"`
	Tiers            []tierDocument `bson:"tier_pricing,omitempty"`
}

type tierDocument struct {
	MinDays          int   `bson:"min_days"`
	PricePerDayCents int64 `bson:"price_per_day_cents"`
}

type offerDocument struct {
	ID              string  `bson:"id"`
	Name            string  `bson:"name,omitempty"`
	DiscountPercent float64 `bson:"discount_percentage"`
	MinimumDays     int     `bson:"minimum_days"`
	ValidFrom       int64   `bson:"valid_from"`
	ValidUntil      int64   `bson:"valid_until"`
}

type extraDocument struct {
	ID               string `bson:"id"`
	Name             string `bson:"name,omitempty"`
	PricePerDayCents int64  `bson:"price_per_day_cents"`
	MaxQuantity      *int   `bson:"max_quantity,omitempty"`
}

func newCatalogDocument(catalog domainquote.Catalog) catalogDocument {
	doc := catalogDocument{ID: catalog.VehicleID, Currency: catalog.Currency}
	for _, rule := range catalog.Rules {
		rd := ruleDocument{
			ID:               rule.ID,
			Name:             rule.Name,
			StartMonth:       int(rule.StartMonth),
			StartDay:         rule.StartDay,
			EndMonth:         int(rule.EndMonth),
			EndDay:           rule.EndDay,
			PricePerDayCents: rule.PricePerDay.Amount,
		}
		for _, tier := range rule.Tiers {
			rd.Tiers = append(rd.Tiers, tierDocument{MinDays: tier.MinDays, PricePerDayCents: tier.PricePerDay.Amount})
		}
		doc.Rules = append(doc.Rules, rd)
	}
	for _, offer := range catalog.Offers {
		doc.Offers = append(doc.Offers, offerDocument{
			ID:              offer.ID,
			Name:            offer.Name,
			DiscountPercent: offer.DiscountPercent,
			MinimumDays:     offer.MinimumDays,
			ValidFrom:       offer.ValidFrom.UnixMilli(),
			ValidUntil:      offer.ValidUntil.UnixMilli(),
		})
	}
	for _, extra := range catalog.Extras {
		doc.Extras = append(doc.Extras, extraDocument{
			ID:               extra.ID,
			Name:             extra.Name,
			PricePerDayCents: extra.PricePerDay.Amount,
			MaxQuantity:      extra.MaxQuantity,
		})
	}
	return doc
}

func (d catalogDocument) toCatalog() domainquote.Catalog {
	catalog := domainquote.Catalog{VehicleID: d.ID, Currency: d.Currency}
	for _, rd := range d.Rules {
		rule := domainquote.PricingRule{
			ID:          rd.ID,
			Name:        rd.Name,
			StartMonth:  time.Month(rd.StartMonth),
			StartDay:    rd.StartDay,
			EndMonth:    time.Month(rd.EndMonth),
			EndDay:      rd.EndDay,
			PricePerDay: money.Money{Amount: rd.PricePerDayCents, Currency: d.Currency},
		}
		for _, tier := range rd.Tiers {
			rule.Tiers = append(rule.Tiers, domainquote.PriceTier{
				MinDays:     tier.MinDays,
				PricePerDay: money.Money{Amount: tier.PricePerDayCents, Currency: d.Currency},
			})
		}
		catalog.Rules = append(catalog.Rules, rule)
	}
	for _, od := range d.Offers {
		catalog.Offers = append(catalog.Offers, domainquote.ActiveOffer{
			ID:              od.ID,
			Name:            od.Name,
			DiscountPercent: od.DiscountPercent,
			MinimumDays:     od.MinimumDays,
			ValidFrom:       time.UnixMilli(od.ValidFrom).UTC(),
			ValidUntil:      time.UnixMilli(od.ValidUntil).UTC(),
		})
	}
	for _, ed := range d.Extras {
		catalog.Extras = append(catalog.Extras, domainquote.Extra{
			ID:          ed.ID,
			Name:        ed.Name,
			PricePerDay: money.Money{Amount: ed.PricePerDayCents, Currency: d.Currency},
			MaxQuantity: ed.MaxQuantity,
		})
	}
	return catalog
}

var _ policies.CatalogPort = (*CatalogRepository)(nil)
