// Package timezone provides time utilities for the application.
//
// Usage Examples:
//
//  1. Basic usage after initialization:
//     now := timezone.Now()                    // Get current time in app timezone
//     appTime := timezone.ToAppTime(someTime)  // Convert any time to app timezone
//
//  2. Booking instants travel as UTC:
//     t, err := timezone.ParseInstant("2025-03-01T09:00:00Z")
//     s := timezone.FormatInstant(t)           // "2025-03-01T09:00:00Z"
//
//  3. Pinning the clock in tests:
//     clock := timezone.Fixed(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
//
// The display timezone is configured via the APP_TIMEZONE environment variable
// and is automatically initialized when the package is imported.
// Use standard IANA timezone database names for reliable cross-platform compatibility.
package timezone
