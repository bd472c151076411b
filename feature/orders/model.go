package orders

import (
	"time"

	"bulk-ingest/feature/shopify"

	"gorm.io/datatypes"
)

// Order is the Order node of a bulk export line.
type Order struct {
	ID           string         `json:"id"`
	Name         *string        `json:"name"`
	OrderNumber  shopify.Scalar `json:"orderNumber"`
	Customer     *shopify.Ref   `json:"customer"`
	CreatedAt    *string        `json:"createdAt"`
	UpdatedAt    *string        `json:"updatedAt"`
	CancelledAt  *string        `json:"cancelledAt"`
	CancelReason *string        `json:"cancelReason"`
	ProcessedAt  *string        `json:"processedAt"`
	ClosedAt     *string        `json:"closedAt"`
	Confirmed    *bool          `json:"confirmed"`
	Test         *bool          `json:"test"`
	Tags         shopify.Tags   `json:"tags"`
	Note         *string        `json:"note"`
	SourceName   *string        `json:"sourceName"`
	CurrencyCode *string        `json:"currencyCode"`

	CurrentSubtotalPriceSet      *shopify.MoneyBag `json:"currentSubtotalPriceSet"`
	CurrentSubtotalPrice         *shopify.MoneyBag `json:"currentSubtotalPrice"`
	CurrentTotalTaxSet           *shopify.MoneyBag `json:"currentTotalTaxSet"`
	CurrentTotalTax              *shopify.MoneyBag `json:"currentTotalTax"`
	CurrentTotalDiscountsSet     *shopify.MoneyBag `json:"currentTotalDiscountsSet"`
	CurrentTotalDiscounts        *shopify.MoneyBag `json:"currentTotalDiscounts"`
	CurrentTotalPriceSet         *shopify.MoneyBag `json:"currentTotalPriceSet"`
	CurrentTotalPrice            *shopify.MoneyBag `json:"currentTotalPrice"`
	TotalShippingPriceSet        *shopify.MoneyBag `json:"totalShippingPriceSet"`
	CurrentTotalShippingPriceSet *shopify.MoneyBag `json:"currentTotalShippingPriceSet"`
	TotalRefundedSet             *shopify.MoneyBag `json:"totalRefundedSet"`

	BillingAddress  *shopify.Address `json:"billingAddress"`
	ShippingAddress *shopify.Address `json:"shippingAddress"`
	Fulfillments    []*Fulfillment   `json:"fulfillments"`
}

// Fulfillment is the part of a fulfillment the row keeps.
type Fulfillment struct {
	CreatedAt     *string `json:"createdAt"`
	Status        *string `json:"status"`
	DisplayStatus *string `json:"displayStatus"`
}

// LineItem is a LineItem line of the export.
type LineItem struct {
	ID                   string            `json:"id"`
	Name                 *string           `json:"name"`
	Title                *string           `json:"title"`
	SKU                  *string           `json:"sku"`
	Quantity             shopify.Scalar    `json:"quantity"`
	Variant              *shopify.Ref      `json:"variant"`
	OriginalUnitPriceSet *shopify.MoneyBag `json:"originalUnitPriceSet"`
	DiscountedTotalSet   *shopify.MoneyBag `json:"discountedTotalSet"`
}

// LineItemSummary is the stored form of a line item inside the line_items column.
type LineItemSummary struct {
	LineItemID        *int64   `json:"line_item_id"`
	VariantID         *int64   `json:"variant_id"`
	SKU               *string  `json:"sku"`
	Name              *string  `json:"name"`
	Quantity          *float64 `json:"quantity"`
	OriginalUnitPrice *float64 `json:"original_unit_price"`
	DiscountedTotal   *float64 `json:"discounted_total"`
}

// Row is a row of the raw orders table.
type Row struct {
	OrderID               int64      `gorm:"column:order_id;primaryKey;autoIncrement:false" json:"order_id"`
	CustomerID            *int64     `gorm:"column:customer_id" json:"customer_id"`
	Name                  *string    `gorm:"column:name" json:"name"`
	OrderNumber           *int64     `gorm:"column:order_number" json:"order_number"`
	ShopCreatedAt         *time.Time `gorm:"column:created_at" json:"created_at"`
	ShopUpdatedAt         *time.Time `gorm:"column:updated_at" json:"updated_at"`
	CancelledAt           *time.Time `gorm:"column:cancelled_at" json:"cancelled_at"`
	CancelReason          *string    `gorm:"column:cancel_reason" json:"cancel_reason"`
	ProcessedAt           *time.Time `gorm:"column:processed_at" json:"processed_at"`
	ClosedAt              *time.Time `gorm:"column:closed_at" json:"closed_at"`
	Confirmed             *bool      `gorm:"column:confirmed" json:"confirmed"`
	Test                  *bool      `gorm:"column:test" json:"test"`
	Tags                  *string    `gorm:"column:tags" json:"tags"`
	Note                  *string    `gorm:"column:note" json:"note"`
	SourceName            *string    `gorm:"column:source_name" json:"source_name"`
	CurrentSubtotalPrice  *float64   `gorm:"column:current_subtotal_price" json:"current_subtotal_price"`
	CurrentTotalTax       *float64   `gorm:"column:current_total_tax" json:"current_total_tax"`
	CurrentTotalDiscounts *float64   `gorm:"column:current_total_discounts" json:"current_total_discounts"`
	CurrentTotalPrice     *float64   `gorm:"column:current_total_price" json:"current_total_price"`
	TotalShippingPrice    *float64   `gorm:"column:total_shipping_price" json:"total_shipping_price"`
	TotalRefunded         *float64   `gorm:"column:total_refunded" json:"total_refunded"`
	CurrencyCode          *string    `gorm:"column:currency_code" json:"currency_code"`

	BillingFirstName    *string `gorm:"column:billing_first_name" json:"billing_first_name"`
	BillingLastName     *string `gorm:"column:billing_last_name" json:"billing_last_name"`
	BillingCompany      *string `gorm:"column:billing_company" json:"billing_company"`
	BillingAddress1     *string `gorm:"column:billing_address1" json:"billing_address1"`
	BillingAddress2     *string `gorm:"column:billing_address2" json:"billing_address2"`
	BillingCity         *string `gorm:"column:billing_city" json:"billing_city"`
	BillingProvince     *string `gorm:"column:billing_province" json:"billing_province"`
	BillingProvinceCode *string `gorm:"column:billing_province_code" json:"billing_province_code"`
	BillingZip          *string `gorm:"column:billing_zip" json:"billing_zip"`
	BillingCountry      *string `gorm:"column:billing_country" json:"billing_country"`
	BillingCountryCode  *string `gorm:"column:billing_country_code" json:"billing_country_code"`
	BillingPhone        *string `gorm:"column:billing_phone" json:"billing_phone"`

	ShippingFirstName    *string `gorm:"column:shipping_first_name" json:"shipping_first_name"`
	ShippingLastName     *string `gorm:"column:shipping_last_name" json:"shipping_last_name"`
	ShippingCompany      *string `gorm:"column:shipping_company" json:"shipping_company"`
	ShippingAddress1     *string `gorm:"column:shipping_address1" json:"shipping_address1"`
	ShippingAddress2     *string `gorm:"column:shipping_address2" json:"shipping_address2"`
	ShippingCity         *string `gorm:"column:shipping_city" json:"shipping_city"`
	ShippingProvince     *string `gorm:"column:shipping_province" json:"shipping_province"`
	ShippingProvinceCode *string `gorm:"column:shipping_province_code" json:"shipping_province_code"`
	ShippingZip          *string `gorm:"column:shipping_zip" json:"shipping_zip"`
	ShippingCountry      *string `gorm:"column:shipping_country" json:"shipping_country"`
	ShippingCountryCode  *string `gorm:"column:shipping_country_code" json:"shipping_country_code"`
	ShippingPhone        *string `gorm:"column:shipping_phone" json:"shipping_phone"`

	FulfillmentStatus        *string        `gorm:"column:fulfillment_status" json:"fulfillment_status"`
	FulfillmentDisplayStatus *string        `gorm:"column:fulfillment_display_status" json:"fulfillment_display_status"`
	LineItemCount            int            `gorm:"column:line_item_count" json:"line_item_count"`
	LineItems                datatypes.JSON `gorm:"column:line_items" json:"line_items"`
}
