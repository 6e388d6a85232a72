package labeling

// Dimensions holds the node- and edge-feature dimensionality of a dataset.
type Dimensions struct {
	Node int
	Edge int
}

// Total returns the length of weight and joint feature vectors.
func (d Dimensions) Total() int { return d.Edge + d.Node }

// InferDimensions scans every node vector and every neighbor edge vector
// once and returns one plus the largest feature index seen for each.
// For dense data this is the common vector length.
func InferDimensions(samples []*Sample) Dimensions {
	var d Dimensions
	for _, s := range samples {
		for i := 0; i < s.NumNodes(); i++ {
			d.Node = max(d.Node, s.Node(i).MaxIndexPlusOne())
			for n := 0; n < s.NumNeighbors(i); n++ {
				d.Edge = max(d.Edge, s.Edge(i, n).MaxIndexPlusOne())
			}
		}
	}

	return d
}
