// Package mesh provides geometric mesh synthesis and processing for Go.
//
// # Overview
//
// mesh turns 2D boundary descriptions into 3D solids, reduces arbitrary
// meshes into bounded sets of convex pieces, and fuses submeshes with
// heterogeneous per-vertex attributes into a single mesh. The package is a
// pure data transformation layer: it consumes and produces plain mesh
// values and performs no rendering, file I/O, or GPU buffer packing.
//
// # Quick Start
//
//	import (
//	    "github.com/paulmach/orb"
//
//	    "github.com/gogpu/mesh"
//	)
//
//	// A unit square with a square hole in the middle.
//	path := mesh.Path{
//	    {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
//	    {{0.25, 0.25}, {0.25, 0.75}, {0.75, 0.75}, {0.75, 0.25}},
//	}
//
//	// Lift it to a solid of height 10.
//	sm, err := mesh.ExtrudePath(path, 10)
//	if err != nil {
//	    // degenerate or inconsistent path
//	}
//	_ = sm.Bounds() // [0 0 0]–[1 1 10]
//
// # Operations
//
// The four core operations are pure, stateless and safe for concurrent use
// on independent inputs:
//
//   - [Tessellate]: path with holes → 2D triangle set
//   - [Extrude] / [ExtrudePath]: 2D triangle set → extruded solid SubMesh
//   - [Decompose]: arbitrary SubMesh → at most K convex hull SubMeshes
//   - [MergeSubMeshes]: multi-submesh Mesh → single-submesh Mesh
//
// # Collaborators
//
// [Registry] is a name-keyed mesh owner with explicit lifetime, used by
// callers that want named meshes ([Registry.CreateExtrudedPolyline],
// [Registry.CreateBox], ...). [NewBox], [NewSphere] and [NewCylinder]
// generate primitive meshes used as fixtures and registry content. The
// text3d subpackage synthesizes solid meshes from shaped text outlines.
//
// # Coordinate System
//
// 2D input paths live in the XY plane with Y increasing up; extrusion adds
// Z with the bottom cap at z=0 and the top cap at z=height. All coordinate
// comparisons use the fixed tolerance [Eps].
package mesh
