// Package customers maps the Customer bulk export to the raw customers table.
//
// Customers are the parents; their Order and DraftOrder lines are children and
// are counted on the row. The default address provides the address columns
// and the phone when the customer has none.
package customers
