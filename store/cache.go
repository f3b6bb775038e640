// ABOUTME: In-memory mirror of the three remote collections
// ABOUTME: Replaced wholesale on fetch, patched optimistically on mutation
package store

import "github.com/tessaly/vendordesk/models"

// Cache holds the client's view of the store. It is only ever written
// from confirmed gateway results: fetches replace a collection, inserts
// append the canonical returned row, updates replace by id, deletes
// remove by id after the remote confirms.
type Cache struct {
	Vendors         []models.Vendor
	Products        []models.Product
	Representatives []models.Representative
}

// Clear drops everything, reflecting sign-out.
func (c *Cache) Clear() {
	c.Vendors = nil
	c.Products = nil
	c.Representatives = nil
}

func (c *Cache) SetVendors(vendors []models.Vendor)     { c.Vendors = vendors }
func (c *Cache) SetProducts(products []models.Product) { c.Products = products }
func (c *Cache) SetRepresentatives(reps []models.Representative) {
	c.Representatives = reps
}

func (c *Cache) AddVendor(v models.Vendor)   { c.Vendors = append(c.Vendors, v) }
func (c *Cache) AddProduct(p models.Product) { c.Products = append(c.Products, p) }

func (c *Cache) ReplaceVendor(v models.Vendor) {
	for i := range c.Vendors {
		if c.Vendors[i].ID == v.ID {
			c.Vendors[i] = v
			return
		}
	}
}

func (c *Cache) ReplaceProduct(p models.Product) {
	for i := range c.Products {
		if c.Products[i].ID == p.ID {
			c.Products[i] = p
			return
		}
	}
}

func (c *Cache) RemoveVendor(id string) {
	c.Vendors = removeByID(c.Vendors, id, func(v models.Vendor) string { return v.ID })
}

func (c *Cache) RemoveProduct(id string) {
	c.Products = removeByID(c.Products, id, func(p models.Product) string { return p.ID })
}

func (c *Cache) RemoveRepresentative(id string) {
	c.Representatives = removeByID(c.Representatives, id, func(r models.Representative) string { return r.ID })
}

func (c *Cache) VendorByID(id string) *models.Vendor {
	for i := range c.Vendors {
		if c.Vendors[i].ID == id {
			return &c.Vendors[i]
		}
	}
	return nil
}

func (c *Cache) ProductByID(id string) *models.Product {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i]
		}
	}
	return nil
}

func (c *Cache) RepresentativeByID(id string) *models.Representative {
	for i := range c.Representatives {
		if c.Representatives[i].ID == id {
			return &c.Representatives[i]
		}
	}
	return nil
}

func removeByID[T any](list []T, id string, key func(T) string) []T {
	out := list[:0]
	for _, item := range list {
		if key(item) != id {
			out = append(out, item)
		}
	}
	return out
}
