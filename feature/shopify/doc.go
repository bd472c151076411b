// Package shopify holds the Admin GraphQL shapes shared by the bulk export
// datasets: money bags, addresses, marketing consent and the lenient scalar
// and tag encodings exporters produce.
package shopify
