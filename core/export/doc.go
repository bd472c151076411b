// Package export serializes row collections to CSV or JSON.
//
// CSV output starts with a header of the row's column names (taken from the
// gorm schema) and quotes fields per RFC 4180. Nil values are empty fields,
// times are RFC 3339 in UTC. JSON output is an indented array of row objects.
package export
