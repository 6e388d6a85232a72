package labeling

import "errors"

// Sentinel errors for the labeling problem.
var (
	// ErrInvalidDataset indicates samples and labels do not form a valid
	// graph labeling problem. Returned (wrapped) by Validate and New.
	ErrInvalidDataset = errors.New("labeling: invalid dataset")

	// ErrIndexOutOfRange indicates a sample index outside [0, NumSamples()).
	ErrIndexOutOfRange = errors.New("labeling: sample index out of range")

	// ErrLabelingLength indicates a labeling whose length differs from the
	// sample's node count.
	ErrLabelingLength = errors.New("labeling: labeling length does not match node count")
)
