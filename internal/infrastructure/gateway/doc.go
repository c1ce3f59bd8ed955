// Package gateway provides the Stripe-backed implementation of the payment
// gateway contract, along with the mapping between Stripe API objects and
// domain entities. Webhook payload mapping shares the same functions so the
// API and event paths cannot drift apart.
package gateway
