package orders

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"bulk-ingest/core/ingest"
	"bulk-ingest/core/reconcile"
	"bulk-ingest/core/utils"
	"bulk-ingest/feature/shopify"

	"gorm.io/datatypes"
)

const (
	KindOrder    = "Order"
	KindLineItem = "LineItem"
)

var orderNumberPattern = regexp.MustCompile(`#?(\d+)`)

// Dataset maps reconciled orders to rows.
type Dataset struct{}

// New creates the orders dataset.
func New() *Dataset {
	return &Dataset{}
}

func (d *Dataset) Name() string { return "orders" }

func (d *Dataset) PrimaryKey() string { return "order_id" }

func (d *Dataset) AggregateColumns() []string {
	return []string{"line_item_count", "line_items"}
}

func (d *Dataset) Profile() reconcile.Profile {
	return reconcile.Profile{
		ParentKind: KindOrder,
		ChildKinds: []string{KindLineItem},
		ChildField: "lineItems",
	}
}

// MapRow builds the order row with its line items as a JSON column.
func (d *Dataset) MapRow(p *reconcile.Parent) (Row, error) {
	var o Order
	if err := p.Decode(&o); err != nil {
		return Row{}, fmt.Errorf("%w: %w", ingest.ErrUnmappable, err)
	}

	id, ok := reconcile.ExtractNumericID(o.ID)
	if !ok {
		return Row{}, fmt.Errorf("%w: order id %q has no numeric suffix", ingest.ErrUnmappable, o.ID)
	}

	items, err := lineItems(p.ChildrenOf(KindLineItem))
	if err != nil {
		return Row{}, fmt.Errorf("%w: order %d: %w", ingest.ErrUnmappable, id, err)
	}

	billing := o.BillingAddress
	if billing == nil {
		billing = &shopify.Address{}
	}
	shipping := o.ShippingAddress
	if shipping == nil {
		shipping = &shopify.Address{}
	}
	latest := latestFulfillment(o.Fulfillments)

	row := Row{
		OrderID:               id,
		Name:                  utils.NonEmpty(o.Name),
		OrderNumber:           orderNumber(o.Name, o.OrderNumber),
		ShopCreatedAt:         utils.ParseTime(o.CreatedAt),
		ShopUpdatedAt:         utils.ParseTime(o.UpdatedAt),
		CancelledAt:           utils.ParseTime(o.CancelledAt),
		CancelReason:          utils.NonEmpty(o.CancelReason),
		ProcessedAt:           utils.ParseTime(o.ProcessedAt),
		ClosedAt:              utils.ParseTime(o.ClosedAt),
		Confirmed:             o.Confirmed,
		Test:                  o.Test,
		Tags:                  o.Tags.Text(),
		Note:                  utils.NonEmpty(o.Note),
		SourceName:            utils.NonEmpty(o.SourceName),
		CurrentSubtotalPrice:  shopify.ShopAmount(o.CurrentSubtotalPriceSet, o.CurrentSubtotalPrice),
		CurrentTotalTax:       shopify.ShopAmount(o.CurrentTotalTaxSet, o.CurrentTotalTax),
		CurrentTotalDiscounts: shopify.ShopAmount(o.CurrentTotalDiscountsSet, o.CurrentTotalDiscounts),
		CurrentTotalPrice:     shopify.ShopAmount(o.CurrentTotalPriceSet, o.CurrentTotalPrice),
		TotalShippingPrice:    shopify.ShopAmount(o.TotalShippingPriceSet, o.CurrentTotalShippingPriceSet),
		TotalRefunded:         shopify.ShopAmount(o.TotalRefundedSet),
		CurrencyCode:          utils.NonEmpty(o.CurrencyCode),

		BillingFirstName:    utils.NonEmpty(billing.FirstName),
		BillingLastName:     utils.NonEmpty(billing.LastName),
		BillingCompany:      utils.NonEmpty(billing.Company),
		BillingAddress1:     utils.NonEmpty(billing.Address1),
		BillingAddress2:     utils.NonEmpty(billing.Address2),
		BillingCity:         utils.NonEmpty(billing.City),
		BillingProvince:     utils.NonEmpty(billing.Province),
		BillingProvinceCode: utils.NonEmpty(billing.ProvinceCode),
		BillingZip:          utils.NonEmpty(billing.Zip),
		BillingCountry:      utils.NonEmpty(billing.Country),
		BillingCountryCode:  billing.CountryISO(),
		BillingPhone:        utils.NonEmpty(billing.Phone),

		ShippingFirstName:    utils.NonEmpty(shipping.FirstName),
		ShippingLastName:     utils.NonEmpty(shipping.LastName),
		ShippingCompany:      utils.NonEmpty(shipping.Company),
		ShippingAddress1:     utils.NonEmpty(shipping.Address1),
		ShippingAddress2:     utils.NonEmpty(shipping.Address2),
		ShippingCity:         utils.NonEmpty(shipping.City),
		ShippingProvince:     utils.NonEmpty(shipping.Province),
		ShippingProvinceCode: utils.NonEmpty(shipping.ProvinceCode),
		ShippingZip:          utils.NonEmpty(shipping.Zip),
		ShippingCountry:      utils.NonEmpty(shipping.Country),
		ShippingCountryCode:  shipping.CountryISO(),
		ShippingPhone:        utils.NonEmpty(shipping.Phone),

		LineItemCount: len(items),
	}

	if o.Customer != nil {
		if cid, ok := reconcile.ExtractNumericID(o.Customer.ID); ok {
			row.CustomerID = utils.Ptr(cid)
		}
	}
	if latest != nil {
		row.FulfillmentStatus = utils.NonEmpty(latest.Status)
		row.FulfillmentDisplayStatus = utils.NonEmpty(latest.DisplayStatus)
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		return Row{}, fmt.Errorf("failed to encode line items of order %d: %w", id, err)
	}
	row.LineItems = datatypes.JSON(encoded)

	return row, nil
}

// orderNumber reads the number from a "#1001" style name, else from orderNumber.
func orderNumber(name *string, fallback shopify.Scalar) *int64 {
	text := string(fallback)
	if n := utils.NonEmpty(name); n != nil {
		text = *n
	}
	m := orderNumberPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, ok := utils.ToInt64(m[1])
	if !ok {
		return nil
	}
	return utils.Ptr(n)
}

// latestFulfillment picks the most recently created fulfillment, or the last
// one when none carries a creation time.
func latestFulfillment(fulfillments []*Fulfillment) *Fulfillment {
	var latest *Fulfillment
	var latestAt time.Time
	for _, f := range fulfillments {
		if f == nil {
			continue
		}
		at := utils.ParseTime(f.CreatedAt)
		if at == nil {
			continue
		}
		if latest == nil || !latestAt.After(*at) {
			latest, latestAt = f, *at
		}
	}
	if latest != nil {
		return latest
	}
	if n := len(fulfillments); n > 0 {
		return fulfillments[n-1]
	}
	return nil
}

func lineItems(children []reconcile.Child) ([]LineItemSummary, error) {
	items := make([]LineItemSummary, 0, len(children))
	for _, c := range children {
		var li LineItem
		if err := c.Decode(&li); err != nil {
			return nil, err
		}
		item := LineItemSummary{
			SKU:               utils.NonEmpty(li.SKU),
			Name:              utils.Coalesce(li.Name, li.Title),
			Quantity:          li.Quantity.Float(),
			OriginalUnitPrice: shopify.ShopAmount(li.OriginalUnitPriceSet),
			DiscountedTotal:   shopify.ShopAmount(li.DiscountedTotalSet),
		}
		if id, ok := reconcile.ExtractNumericID(li.ID); ok {
			item.LineItemID = &id
		}
		if li.Variant != nil {
			if vid, ok := reconcile.ExtractNumericID(li.Variant.ID); ok {
				item.VariantID = &vid
			}
		}
		items = append(items, item)
	}
	return items, nil
}
