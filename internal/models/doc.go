// Package models defines the core domain records for the football finance
// ledger.
//
// # Records
//
//   - Player: a team member, identified by name, never hard-deleted
//   - Game: one pitch booking with attendance, guests, cost and booker
//   - Payment: a signed financial transaction against one player
//   - Adjustment: a one-time opening balance carried over from import
//   - PlayerSummary: the derived per-player aggregate (materialized view)
//   - LedgerEntry: one row of a player's bank-statement-style ledger
//
// # Design principles
//
//  1. Player names are the identity; comparisons are collation-aware
//     (see the names package), matching the store's collation.
//  2. Attendance and guest counts are structured mappings keyed by player
//     name. A player's name is never used as a document field name, so a
//     player called "Cost of Game" cannot corrupt a record.
//  3. All currency figures are money.Money. Derived display strings such as
//     PlayerList are rendered on demand, never stored as the source of
//     truth.
package models
