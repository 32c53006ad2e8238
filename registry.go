package mesh

import (
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// Registry failure modes.
var (
	// ErrDuplicateName indicates a Register with a name already taken.
	ErrDuplicateName = errors.New("mesh: duplicate mesh name")

	// ErrEmptyName indicates a mesh with no name.
	ErrEmptyName = errors.New("mesh: empty mesh name")
)

// Registry is a name-keyed owner of meshes. It is an explicit object
// rather than ambient package state: callers that want process-wide
// registration create one registry and pass it to call sites. The
// geometric operations themselves never touch a registry; the registry
// calls them.
//
// Registry is safe for concurrent use. At most one write per name is
// committed: registering a name that already exists fails with
// ErrDuplicateName.
type Registry struct {
	mu     sync.RWMutex
	meshes map[string]*Mesh
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{meshes: make(map[string]*Mesh)}
}

// Register takes ownership of a mesh under its name.
func (r *Registry) Register(m *Mesh) error {
	if m == nil {
		return ErrNilMesh
	}
	if m.Name() == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meshes[m.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, m.Name())
	}
	r.meshes[m.Name()] = m
	return nil
}

// ByName returns the mesh registered under name. The caller receives a
// non-owning reference; the registry controls the mesh's lifetime.
func (r *Registry) ByName(name string) (*Mesh, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.meshes[name]
	return m, ok
}

// Has reports whether a mesh is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.meshes[name]
	return ok
}

// Remove unregisters the mesh under name, reporting whether it existed.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.meshes[name]
	delete(r.meshes, name)
	return ok
}

// RemoveAll unregisters every mesh.
func (r *Registry) RemoveAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meshes = make(map[string]*Mesh)
}

// Len returns the number of registered meshes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.meshes)
}

// Names returns the registered names in unspecified order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.meshes))
	for n := range r.meshes {
		names = append(names, n)
	}
	return names
}

// CreateExtrudedPolyline extrudes a path to the given height and registers
// the result under name. If tessellation or extrusion fails, nothing is
// registered.
func (r *Registry) CreateExtrudedPolyline(name string, path Path, height float64) (*Mesh, error) {
	sm, err := ExtrudePath(path, height)
	if err != nil {
		return nil, err
	}
	sm.SetName(name + "_submesh")
	m := NewMesh(name)
	m.AddSubMesh(sm)
	if err := r.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// CreateBox generates and registers an axis-aligned box of the given size
// centered at the origin.
func (r *Registry) CreateBox(name string, size r3.Vec) (*Mesh, error) {
	m, err := NewBox(name, size)
	if err != nil {
		return nil, err
	}
	if err := r.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// CreateSphere generates and registers a UV sphere.
func (r *Registry) CreateSphere(name string, radius float64, rings, segments int) (*Mesh, error) {
	m, err := NewSphere(name, radius, rings, segments)
	if err != nil {
		return nil, err
	}
	if err := r.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// CreateCylinder generates and registers a capped cylinder along the Z
// axis.
func (r *Registry) CreateCylinder(name string, radius, length float64, rings, segments int) (*Mesh, error) {
	m, err := NewCylinder(name, radius, length, rings, segments)
	if err != nil {
		return nil, err
	}
	if err := r.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}
