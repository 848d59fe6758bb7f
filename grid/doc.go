/*
Package grid holds the index and storage conventions shared by every kernel
in this module.

A grid function is a dense array of real values over an axis-aligned box of
integer grid indices. Two nested boxes are tracked for each buffer: the
ghostbox (the full allocated extent, boundary padding included) and the
fillbox (the interior sub-box where values are actually computed). The
fillbox is always contained in the ghostbox.

Storage order follows the meshgrid convention of the upstream tooling that
produces these buffers: the value at spatial point (x_i, y_j, z_k) is stored
at index (j, i, k), with the first stored axis varying fastest in memory.
Kernels operate purely in storage order. The swap between natural (x,y,z)
order and storage order happens only at the external interface, via
SpacingFromXYZ for grid spacing and in whatever layer names the per-axis
outputs.
*/
package grid
