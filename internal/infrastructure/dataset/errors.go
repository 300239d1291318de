package dataset

import "errors"

var (
	// ErrUnreadableSource is returned when the input source cannot be
	// read or normalized into transactions
	ErrUnreadableSource = errors.New("unreadable transaction dataset")

	// ErrEmptyDataset is returned when the source contains no rows at all
	ErrEmptyDataset = errors.New("transaction dataset is empty")
)
