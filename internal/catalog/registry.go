package catalog

import (
	"fmt"
	"strings"

	"tidy/internal/services"
)

// UnsortedCategory is always present and always numbered last.
const (
	UnsortedCategory = "Unsorted"
	unsortedNumber   = 99
	maxCategories    = 98
)

// Category is a named destination with a stable position number.
type Category struct {
	Number int
	Name   string
}

// FolderName returns the destination folder name in NN_Name form.
func (c Category) FolderName() string {
	return fmt.Sprintf("%02d_%s", c.Number, c.Name)
}

// UnsortedFolder returns the fixed folder name of the Unsorted category.
func UnsortedFolder() string {
	return Category{Number: unsortedNumber, Name: UnsortedCategory}.FolderName()
}

// Registry holds the ordered category list. Position in the list
// determines the folder number; Unsorted sits outside the ordering.
type Registry struct {
	ordered []Category
	byName  map[string]int
}

// NewRegistry builds a registry from ordered category names. Unsorted is
// appended automatically and must not appear in the input.
func NewRegistry(names []string) (*Registry, error) {
	if len(names) > maxCategories {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "registry",
			fmt.Sprintf("too many categories: %d exceeds %d", len(names), maxCategories), nil)
	}
	r := &Registry{byName: make(map[string]int, len(names)+1)}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.EqualFold(name, UnsortedCategory) {
			return nil, services.Wrap(services.ErrConfiguration, "catalog", "registry",
				"Unsorted is reserved", nil)
		}
		if _, dup := r.byName[strings.ToLower(name)]; dup {
			return nil, services.Wrap(services.ErrConfiguration, "catalog", "registry",
				fmt.Sprintf("duplicate category %q", name), nil)
		}
		r.ordered = append(r.ordered, Category{Name: name})
		r.byName[strings.ToLower(name)] = len(r.ordered) - 1
	}
	r.renumber()
	return r, nil
}

func (r *Registry) renumber() {
	for i := range r.ordered {
		r.ordered[i].Number = i + 1
	}
	r.byName = make(map[string]int, len(r.ordered))
	for i, cat := range r.ordered {
		r.byName[strings.ToLower(cat.Name)] = i
	}
}

// Categories returns every category in folder order, Unsorted last.
func (r *Registry) Categories() []Category {
	out := make([]Category, 0, len(r.ordered)+1)
	out = append(out, r.ordered...)
	out = append(out, Category{Number: unsortedNumber, Name: UnsortedCategory})
	return out
}

// Names returns the configured category names in order, without Unsorted.
func (r *Registry) Names() []string {
	out := make([]string, len(r.ordered))
	for i, cat := range r.ordered {
		out[i] = cat.Name
	}
	return out
}

// Lookup finds a category by name, case-insensitively.
func (r *Registry) Lookup(name string) (Category, bool) {
	if strings.EqualFold(name, UnsortedCategory) {
		return Category{Number: unsortedNumber, Name: UnsortedCategory}, true
	}
	idx, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return Category{}, false
	}
	return r.ordered[idx], true
}

// Contains reports whether the registry knows the named category.
func (r *Registry) Contains(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// FolderName resolves the destination folder for the named category.
func (r *Registry) FolderName(name string) (string, error) {
	cat, ok := r.Lookup(name)
	if !ok {
		return "", services.Wrap(services.ErrValidation, "catalog", "folder-name",
			fmt.Sprintf("unknown category %q", name), nil)
	}
	return cat.FolderName(), nil
}

// Add inserts a category at the given 1-based position and renumbers
// everything after it. Position 0 appends.
func (r *Registry) Add(name string, position int) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, services.Wrap(services.ErrValidation, "catalog", "add",
			"category name must not be empty", nil)
	}
	if r.Contains(name) {
		return Category{}, services.Wrap(services.ErrValidation, "catalog", "add",
			fmt.Sprintf("category %q already exists", name), nil)
	}
	if len(r.ordered) >= maxCategories {
		return Category{}, services.Wrap(services.ErrValidation, "catalog", "add",
			"category list is full", nil)
	}
	if position <= 0 || position > len(r.ordered)+1 {
		position = len(r.ordered) + 1
	}
	idx := position - 1
	r.ordered = append(r.ordered, Category{})
	copy(r.ordered[idx+1:], r.ordered[idx:])
	r.ordered[idx] = Category{Name: name}
	r.renumber()
	return r.ordered[idx], nil
}

// Remove deletes a category and renumbers the remainder. Unsorted
// cannot be removed.
func (r *Registry) Remove(name string) error {
	if strings.EqualFold(name, UnsortedCategory) {
		return services.Wrap(services.ErrValidation, "catalog", "remove",
			"Unsorted cannot be removed", nil)
	}
	idx, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return services.Wrap(services.ErrValidation, "catalog", "remove",
			fmt.Sprintf("unknown category %q", name), nil)
	}
	r.ordered = append(r.ordered[:idx], r.ordered[idx+1:]...)
	r.renumber()
	return nil
}

// Move shifts a category to a new 1-based position.
func (r *Registry) Move(name string, position int) error {
	idx, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return services.Wrap(services.ErrValidation, "catalog", "move",
			fmt.Sprintf("unknown category %q", name), nil)
	}
	if position < 1 || position > len(r.ordered) {
		return services.Wrap(services.ErrValidation, "catalog", "move",
			fmt.Sprintf("position must be between 1 and %d", len(r.ordered)), nil)
	}
	cat := r.ordered[idx]
	r.ordered = append(r.ordered[:idx], r.ordered[idx+1:]...)
	target := position - 1
	r.ordered = append(r.ordered, Category{})
	copy(r.ordered[target+1:], r.ordered[target:])
	r.ordered[target] = cat
	r.renumber()
	return nil
}
