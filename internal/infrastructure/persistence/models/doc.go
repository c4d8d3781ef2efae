// Package models contains the GORM models for the customers, items and
// borrowing_transactions tables. Domain entities carry no GORM tags; each
// model converts to and from its entity with ToDomain and *ModelFromDomain.
//
// Structure:
// - base.go: BaseModel shared by every table, and All for AutoMigrate
// - borrowing.go: CustomerModel, ItemModel and TransactionModel
package models
