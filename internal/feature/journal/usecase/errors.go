// Package usecase はjournalフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrTradeNotFound is returned when a trade cannot be found by ID for the user.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrInvalidTrade is returned when a trade fails field validation.
	ErrInvalidTrade = errors.New("invalid trade")

	// ErrMergeTooFew is returned when a merge names fewer than two trades.
	ErrMergeTooFew = errors.New("merge requires at least two trades")

	// ErrMergeMixedSymbols is returned when merged trades span multiple symbols.
	ErrMergeMixedSymbols = errors.New("cannot merge trades with different symbols")

	// ErrMergeMixedSides is returned when merged trades span long and short.
	ErrMergeMixedSides = errors.New("cannot merge trades with different sides")

	// ErrMergeZeroQuantity is returned when the merged quantity sums to zero.
	ErrMergeZeroQuantity = errors.New("merged quantity must be positive")
)
