// Package pipeline orders the generation stages into a single strictly
// sequential run, wiring each stage through the step manager so a resumed
// run can skip everything up to its checkpoint.
package pipeline

import "terrainforge/internal/checkpoint"

// Stage IDs, in pipeline order. The checkpoint store keys its blobs by
// these, so renumbering invalidates existing checkpoint databases.
const (
	StageHeightmap  checkpoint.Stage = 1
	StageErosion    checkpoint.Stage = 2
	StageStratums   checkpoint.Stage = 3
	StageCliffs     checkpoint.Stage = 4
	StageWaters     checkpoint.Stage = 5
	StageResizing   checkpoint.Stage = 6
	StageWaterfalls checkpoint.Stage = 7
)
