// Package elements builds the fixed component geometries of a chip: the
// launcher taper, the feedline, the transmon capacitor pads, the Manhattan
// junction metal, and the identification label.
//
// Every builder is a pure function of the chip design record (and a device
// index, where the component is per-device): it derives local dimensions,
// constructs outer and inner boundaries, and returns new geometry in the
// component's local frame. Builders never mutate shared state; placement is
// the pipeline's job.
//
// Dielectric builders return negative geometry, subtracted from the ground
// plane during composition. [JunctionMetal] is the exception: it returns
// positive geometry for the separately deposited junction layer and is
// never subtracted from anything.
package elements
