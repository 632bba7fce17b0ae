// Package notify delivers one-time codes to users through an out-of-band
// channel. The engine only depends on the [Notifier] contract; the Postmark
// client is the production implementation and [Mock] records sends for tests.
package notify
