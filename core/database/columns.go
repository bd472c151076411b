package database

import (
	"fmt"
	"sync"

	"gorm.io/gorm/schema"
)

var schemaCache sync.Map

// ModelColumns returns the column names of a gorm model in declaration order.
func ModelColumns(model any) ([]string, error) {
	s, err := schema.Parse(model, &schemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse model schema: %w", err)
	}

	columns := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		if field.DBName == "" {
			continue
		}
		columns = append(columns, field.DBName)
	}
	return columns, nil
}

// ModelFields returns the parsed schema fields that map to a column, in declaration order.
func ModelFields(model any) ([]*schema.Field, error) {
	s, err := schema.Parse(model, &schemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse model schema: %w", err)
	}

	fields := make([]*schema.Field, 0, len(s.Fields))
	for _, field := range s.Fields {
		if field.DBName != "" {
			fields = append(fields, field)
		}
	}
	return fields, nil
}
