// Package orders maps the Order bulk export to the raw orders table.
//
// Orders are the parents and LineItem lines their children. Money columns read
// the shop currency amount of the *Set fields with the legacy fields as
// fallback. The latest fulfillment by creation time provides the fulfillment
// status. Line items are stored as a JSON array next to their count.
package orders
