// Package repository handles all interactions with the database.
//
// It contains the raw SQL for questions and answers and an in-memory
// store with the same semantics. Lookups that find nothing return
// sqlerr.NotFound so callers can translate them into 404s.
package repository
