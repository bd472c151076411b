package customers

import (
	"fmt"

	"bulk-ingest/core/ingest"
	"bulk-ingest/core/reconcile"
	"bulk-ingest/core/utils"
	"bulk-ingest/feature/shopify"
)

const (
	KindCustomer   = "Customer"
	KindOrder      = "Order"
	KindDraftOrder = "DraftOrder"
)

// Dataset maps reconciled customers to rows.
type Dataset struct{}

// New creates the customers dataset.
func New() *Dataset {
	return &Dataset{}
}

func (d *Dataset) Name() string { return "customers" }

func (d *Dataset) PrimaryKey() string { return "customer_id" }

func (d *Dataset) AggregateColumns() []string {
	return []string{"order_count", "draft_order_count"}
}

func (d *Dataset) Profile() reconcile.Profile {
	return reconcile.Profile{
		ParentKind: KindCustomer,
		ChildKinds: []string{KindOrder, KindDraftOrder},
		ChildField: "orders",
	}
}

// MapRow builds the customer row. Orders and draft orders are counted.
func (d *Dataset) MapRow(p *reconcile.Parent) (Row, error) {
	var c Customer
	if err := p.Decode(&c); err != nil {
		return Row{}, fmt.Errorf("%w: %w", ingest.ErrUnmappable, err)
	}

	id, ok := reconcile.ExtractNumericID(c.ID)
	if !ok {
		return Row{}, fmt.Errorf("%w: customer id %q has no numeric suffix", ingest.ErrUnmappable, c.ID)
	}

	addr := c.DefaultAddress
	if addr == nil {
		addr = &shopify.Address{}
	}
	email := c.EmailMarketingConsent
	if email == nil {
		email = &shopify.MarketingConsent{}
	}
	sms := c.SmsMarketingConsent
	if sms == nil {
		sms = &shopify.MarketingConsent{}
	}

	return Row{
		CustomerID:               id,
		FirstName:                c.FirstName,
		LastName:                 c.LastName,
		Email:                    c.Email,
		AddressCompany:           addr.Company,
		Address1:                 addr.Address1,
		Address2:                 addr.Address2,
		City:                     addr.City,
		StateCode:                addr.ProvinceCode,
		CountryCode:              addr.CountryCode,
		ZipCode:                  addr.Zip,
		Phone:                    utils.Coalesce(c.Phone, addr.Phone),
		Note:                     c.Note,
		TaxExempt:                c.TaxExempt,
		ShopCreatedAt:            utils.ParseTime(c.CreatedAt),
		ShopUpdatedAt:            utils.ParseTime(c.UpdatedAt),
		VerifiedEmail:            c.VerifiedEmail,
		ValidEmailAddress:        c.ValidEmailAddress,
		EmailMarketingState:      email.MarketingState,
		EmailMarketingOptInLevel: email.MarketingOptInLevel,
		EmailConsentUpdatedAt:    utils.ParseTime(email.ConsentUpdatedAt),
		SmsMarketingState:        sms.MarketingState,
		SmsMarketingOptInLevel:   sms.MarketingOptInLevel,
		SmsConsentUpdatedAt:      utils.ParseTime(sms.ConsentUpdatedAt),
		DisplayName:              c.DisplayName,
		OrderCount:               len(p.ChildrenOf(KindOrder)),
		DraftOrderCount:          len(p.ChildrenOf(KindDraftOrder)),
	}, nil
}
