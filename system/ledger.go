package system

// StageScheme supplies the per-stage blending weights of the outer
// multi-stage time integration scheme. OldCoeffs weight the stored state
// snapshots, DeltaCoeffs the stored right hand side deltas. The scheme owns
// the tables; a table whose length disagrees with the ledger is a
// configuration error and aborts.
type StageScheme interface {
	OldCoeffs(stage int) []float64
	DeltaCoeffs(stage int) []float64
}

type blendable[F any] interface {
	Copy() F
	SetBlend(weights []float64, entries []F)
}

// storeAndBlend appends a copy of cur to the ledger and, from the second
// stage on, overwrites cur in place with the weighted blend of every stored
// entry. Append order is sub-stage order and is significant for the
// weighting.
func storeAndBlend[F blendable[F]](cur F, list *[]F, weights []float64) {
	*list = append(*list, cur.Copy())
	if len(*list) > 1 {
		cur.SetBlend(weights, *list)
	}
}

// clearList fully releases a ledger, not merely truncates it.
func clearList[F any](list *[]F) {
	*list = nil
}
