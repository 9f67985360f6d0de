// Package alerts delivers unknown-model notifications.
//
// # Overview
//
// When a batch encounters model names with no pricing entry, the processor
// hands the collected unknown-model entries to a notifier once per batch.
// This package provides the notifier implementations:
//
//   - EmailNotifier posts an HTML digest to the internal email API, one send
//     per configured recipient.
//   - LogNotifier writes the collection to the structured log, for
//     deployments without an email channel.
//
// # Delivery Semantics
//
// Notification is a side channel: it must never block batch results. Send
// failures are logged per recipient and the remaining recipients are still
// attempted. Dry-run mode renders and logs the digest without calling the
// API, which is the safe default for development environments.
//
// # Digest Format
//
// The digest lists the distinct unknown model names (sorted), asks for
// pricing or alias entries to be added, and appends the raw collection as a
// pretty-printed JSON excerpt so the recipient can reproduce the lookup.
package alerts
