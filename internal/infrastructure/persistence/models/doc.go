// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Each model has ToDomain and FromDomain mappers. Repositories read and write
// models and hand domain entities to the application layer.
//
// Structure:
// - base.go: BaseModel shared by every table
// - location.go: countries, states, cities, pincodes
// - address.go: customer addresses
// - catalog.go: categories, products and product content (detail, FAQs, reviews)
// - inventory.go: inventory rows and stock movements
// - commerce.go: coupons and payment gateways
package models
