// Package text3d synthesizes solid 3D meshes from text.
//
// Text is shaped with HarfBuzz (go-text/typesetting), each glyph's outline
// is extracted from the font's sfnt tables and flattened to closed rings,
// and the combined rings are tessellated and extruded through the mesh
// package. Holes (the counters of letters like A or O) fall out of the
// tessellator's containment rule, so no winding bookkeeping is needed.
//
//	face, _ := text3d.DefaultFace()
//	m, err := text3d.Solid(face, "A", text3d.Options{Size: 72, Height: 10})
package text3d
