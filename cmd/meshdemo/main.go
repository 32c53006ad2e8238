// Command meshdemo demonstrates the mesh synthesis operations.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/mesh"
	"github.com/gogpu/mesh/text3d"
)

func main() {
	var (
		height     = flag.Float64("height", 10, "extrusion height")
		hulls      = flag.Int("hulls", 4, "maximum convex hulls")
		resolution = flag.Int("resolution", 1000, "decomposition resolution")
		text       = flag.String("text", "A", "text to mesh")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		mesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	reg := mesh.NewRegistry()

	// A unit square with a square hole, extruded to a solid.
	path := mesh.Path{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		{{0.25, 0.25}, {0.25, 0.75}, {0.75, 0.75}, {0.75, 0.25}},
	}
	frame, err := reg.CreateExtrudedPolyline("frame", path, *height)
	if err != nil {
		log.Fatalf("Extrusion failed: %v", err)
	}
	b := frame.Bounds()
	log.Printf("frame: bounds [%.2f %.2f %.2f]–[%.2f %.2f %.2f]",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)

	// Decompose the concave frame into convex pieces.
	ref, _ := frame.SubMeshByIndex(0)
	pieces := mesh.Decompose(ref.Get(), *hulls, *resolution)
	log.Printf("frame decomposed into %d convex hulls (max %d)", len(pieces), *hulls)
	for _, p := range pieces {
		log.Printf("  %s: %d vertices, %d triangles",
			p.Name(), p.VertexCount(), p.IndexCount()/3)
	}

	// Merge primitive submeshes into one.
	if _, err := reg.CreateBox("box", r3.Vec{X: 1, Y: 1, Z: 1}); err != nil {
		log.Fatalf("Box failed: %v", err)
	}
	if _, err := reg.CreateSphere("sphere", 0.5, 8, 16); err != nil {
		log.Fatalf("Sphere failed: %v", err)
	}
	box, _ := reg.ByName("box")
	merged, err := mesh.MergeSubMeshes(box)
	if err != nil {
		log.Fatalf("Merge failed: %v", err)
	}
	mref, _ := merged.SubMeshByIndex(0)
	log.Printf("merged %q: %d vertices, %d texcoord sets",
		merged.Name(), mref.Get().VertexCount(), mref.Get().TexCoordSetCount())

	// Mesh text with the bundled face.
	face, err := text3d.DefaultFace()
	if err != nil {
		log.Fatalf("Font failed: %v", err)
	}
	solid, err := text3d.Solid(face, *text, text3d.Options{Height: *height})
	if err != nil {
		log.Fatalf("Text meshing failed: %v", err)
	}
	sref, _ := solid.SubMeshByIndex(0)
	log.Printf("text %q: %d vertices, %d triangles",
		*text, sref.Get().VertexCount(), sref.Get().IndexCount()/3)

	log.Printf("registry holds %d meshes: %v", reg.Len(), reg.Names())
}
