// Package billing defines the core interfaces and structures for managing membership billing,
// such as customer mappings, subscription mirrors, the product and price catalog, tier resolution and feature entitlements.

package billing
