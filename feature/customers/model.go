package customers

import (
	"time"

	"bulk-ingest/feature/shopify"
)

// Customer is the Customer node of a bulk export line.
type Customer struct {
	ID                    string                    `json:"id"`
	FirstName             *string                   `json:"firstName"`
	LastName              *string                   `json:"lastName"`
	DisplayName           *string                   `json:"displayName"`
	Email                 *string                   `json:"email"`
	Phone                 *string                   `json:"phone"`
	Note                  *string                   `json:"note"`
	TaxExempt             *bool                     `json:"taxExempt"`
	VerifiedEmail         *bool                     `json:"verifiedEmail"`
	ValidEmailAddress     *bool                     `json:"validEmailAddress"`
	CreatedAt             *string                   `json:"createdAt"`
	UpdatedAt             *string                   `json:"updatedAt"`
	DefaultAddress        *shopify.Address          `json:"defaultAddress"`
	EmailMarketingConsent *shopify.MarketingConsent `json:"emailMarketingConsent"`
	SmsMarketingConsent   *shopify.MarketingConsent `json:"smsMarketingConsent"`
}

// Row is a row of the raw customers table.
type Row struct {
	CustomerID               int64      `gorm:"column:customer_id;primaryKey;autoIncrement:false" json:"customer_id"`
	FirstName                *string    `gorm:"column:first_name" json:"first_name"`
	LastName                 *string    `gorm:"column:last_name" json:"last_name"`
	Email                    *string    `gorm:"column:email" json:"email"`
	AddressCompany           *string    `gorm:"column:address_company" json:"address_company"`
	Address1                 *string    `gorm:"column:address_1" json:"address_1"`
	Address2                 *string    `gorm:"column:address_2" json:"address_2"`
	City                     *string    `gorm:"column:city" json:"city"`
	StateCode                *string    `gorm:"column:state_code" json:"state_code"`
	CountryCode              *string    `gorm:"column:country_code" json:"country_code"`
	ZipCode                  *string    `gorm:"column:zip_code" json:"zip_code"`
	Phone                    *string    `gorm:"column:phone" json:"phone"`
	Note                     *string    `gorm:"column:note" json:"note"`
	TaxExempt                *bool      `gorm:"column:tax_exempt" json:"tax_exempt"`
	ShopCreatedAt            *time.Time `gorm:"column:created_at" json:"created_at"`
	ShopUpdatedAt            *time.Time `gorm:"column:updated_at" json:"updated_at"`
	ShopDeletedAt            *time.Time `gorm:"column:deleted_at" json:"deleted_at"`
	VerifiedEmail            *bool      `gorm:"column:verified_email" json:"verified_email"`
	ValidEmailAddress        *bool      `gorm:"column:valid_email_address" json:"valid_email_address"`
	EmailMarketingState      *string    `gorm:"column:email_marketing_state" json:"email_marketing_state"`
	EmailMarketingOptInLevel *string    `gorm:"column:email_marketing_opt_in_level" json:"email_marketing_opt_in_level"`
	EmailConsentUpdatedAt    *time.Time `gorm:"column:email_consent_updated_at" json:"email_consent_updated_at"`
	SmsMarketingState        *string    `gorm:"column:sms_marketing_state" json:"sms_marketing_state"`
	SmsMarketingOptInLevel   *string    `gorm:"column:sms_marketing_opt_in_level" json:"sms_marketing_opt_in_level"`
	SmsConsentUpdatedAt      *time.Time `gorm:"column:sms_consent_updated_at" json:"sms_consent_updated_at"`
	DisplayName              *string    `gorm:"column:display_name" json:"display_name"`
	OrderCount               int        `gorm:"column:order_count" json:"order_count"`
	DraftOrderCount          int        `gorm:"column:draft_order_count" json:"draft_order_count"`
}
