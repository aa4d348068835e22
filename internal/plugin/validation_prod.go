//go:build production

package plugin

// Production builds skip descriptor validation. Unknown plugs are then
// ignored and mismatched implementations are dropped during composition.
const validationEnabled = false
