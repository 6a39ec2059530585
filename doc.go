// Package payscope provides a small, durable balance ledger.
//
// A ledger maps account identifiers to non-negative decimal balances. It is
// loaded once from a [Store], and every mutation is followed by a full
// snapshot flush to that store so the on-disk file always reflects the last
// successful operation.
//
// The core functionalities include:
//   - Balance queries: an absent account simply holds a zero balance.
//   - Transfers: move a positive amount between two distinct accounts,
//     conserving the total and never driving a balance below zero.
//   - Administrative set: overwrite an account balance with any non-negative
//     amount. Authorization is the caller's job.
//   - Persistence: a human-editable YAML file keyed by account identifier,
//     rewritten atomically on every mutation.
//
// This package is the foundational logic for the `money` command-line tool,
// which adds name resolution (package roster) and a text command surface
// (package cmd) on top of it.
package payscope
