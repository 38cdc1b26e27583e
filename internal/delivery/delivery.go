// Package delivery defines the contract every transport entry point fulfils.
package delivery

import "context"

// Delivery is a serving transport, started by the application entry point.
type Delivery interface {
	Serve(ctx context.Context) error
}
