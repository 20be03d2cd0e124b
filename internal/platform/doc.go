// Package platform contains OS and desktop integration: filesystem helpers,
// OS open/reveal, and the notification and file retrieval adapters used by
// the download manager.
package platform
