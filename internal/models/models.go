// Package models declares the persisted tables: clients, suppliers and lines.
package models

// All lists the models in migration order.
func All() []any {
	return []any{&Client{}, &Supplier{}, &Line{}}
}
