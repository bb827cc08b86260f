// README: Vehicle class catalog; resolves a class id to its display name and per-km rate.
package vehicle

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrUnknownClass = errors.New("unknown vehicle class")
	ErrBadCatalog   = errors.New("invalid vehicle catalog")
)

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	classes map[string]Class
	ordered []Class
}

func NewCatalog(classes []Class) (*Catalog, error) {
	c := &Catalog{classes: make(map[string]Class, len(classes))}
	for _, cl := range classes {
		cl.ID = strings.TrimSpace(cl.ID)
		cl.Name = strings.TrimSpace(cl.Name)
		if cl.ID == "" || cl.Name == "" {
			return nil, fmt.Errorf("%w: class needs id and name", ErrBadCatalog)
		}
		if cl.RatePerKm < 0 || math.IsNaN(cl.RatePerKm) || math.IsInf(cl.RatePerKm, 0) {
			return nil, fmt.Errorf("%w: class %s has rate %v", ErrBadCatalog, cl.ID, cl.RatePerKm)
		}
		if _, dup := c.classes[cl.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate class %s", ErrBadCatalog, cl.ID)
		}
		c.classes[cl.ID] = cl
		c.ordered = append(c.ordered, cl)
	}
	if len(c.ordered) == 0 {
		return nil, fmt.Errorf("%w: no classes", ErrBadCatalog)
	}
	sort.SliceStable(c.ordered, func(i, j int) bool { return lessID(c.ordered[i].ID, c.ordered[j].ID) })
	return c, nil
}

// DefaultCatalog panics only if DefaultClasses is edited into an invalid state.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultClasses)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Resolve(id string) (Class, error) {
	cl, ok := c.classes[id]
	if !ok {
		return Class{}, ErrUnknownClass
	}
	return cl, nil
}

func (c *Catalog) List() []Class {
	out := make([]Class, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// lessID orders numeric ids numerically and everything else lexically after them.
func lessID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
