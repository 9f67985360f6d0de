// Package audit persists priced usage records to SQLite.
//
// The Store writes one row per successfully priced record, including
// the full line-item breakdown as JSON, so historical spend can be
// queried and re-audited after pricing tables change. A Scheduler
// prunes rows past the configured retention window on a cron schedule.
//
// The audit trail is optional. When disabled, the processor runs
// without any persistence.
package audit
