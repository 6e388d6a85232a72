// Package labeling defines the structural SVM problem of learning to label
// the nodes of graphs with binary labels.
//
// A model scores a labeling as the sum of node scores of the nodes labeled
// true minus the edge scores of the edges whose endpoints disagree. Both
// scores are linear in one weight vector w laid out as
//
//	w = [ edge weights (Edge dims) | node weights (Node dims) ]
//
// and the joint feature vector psi(sample, labeling) uses the same layout, so
// that w·psi is the labeling's score.
//
// A Problem answers the two queries of a cutting-plane trainer: the feature
// vector of the ground truth of a sample, and the separation oracle, which
// returns the labeling maximizing score plus Hamming loss together with its
// loss and feature vector. The oracle reduces to an attractive Potts model
// solved exactly by minimum cut, which requires the edge block of w to be
// non-negative; NumEdgeWeights tells the trainer how long that block is.
//
// Problem is immutable after New and every method may be called from many
// goroutines at once.
package labeling
