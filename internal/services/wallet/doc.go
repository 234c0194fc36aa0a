/*
Package wallet provides wallet management functionality for the application.

The wallet service handles:
- Balance lookups and checks
- Moving funds between two wallets in one database transaction

Usage:

	// Create a new wallet service
	svc := wallet.NewService(repo, collector, logger)

	// Check that the payer can cover the amount
	err := svc.ValidateBalance(ctx, payerID, amount)

	// Move the funds
	err = svc.Move(ctx, payerID, payeeID, amount)

Concurrency:

Move locks both wallet rows in ascending id order before touching them,
re-checks the payer balance under the lock and debits with a guarded
update, so concurrent transfers on the same wallets are serialized and a
balance can never go negative.

Error Handling:

The service returns domain errors from internal/errors:
- ErrWalletNotFound: When the user has no wallet
- ErrInsufficientFunds: When the payer balance is lower than the amount

Any other error aborts the database transaction and is returned wrapped.

Metrics:

The service records operation durations, results and error types on the
metrics.Collector it is given.
*/
package wallet
