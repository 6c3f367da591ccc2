package main

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/product"
)

// parseCatalog decodes the seed format:
//
//	{"categories": [{"id": 1, "name": "...", "products": [
//	    {"id": 1, "name": "...", "price": 9.99, "description": "..."}]}]}
//
// Prices are parsed from their literal text so no precision is lost.
func parseCatalog(data []byte) ([]product.Category, []product.Product, error) {
	var (
		categories []product.Category
		products   []product.Product
	)

	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "categories" {
			return d.Skip()
		}
		return d.Arr(func(d *jx.Decoder) error {
			var (
				c     product.Category
				items []product.Product
			)
			if err := d.Obj(func(d *jx.Decoder, key string) (err error) {
				switch key {
				case "id":
					c.ID, err = d.Int64()
				case "name":
					c.Name, err = d.Str()
				case "products":
					items, err = parseProducts(d)
				default:
					err = d.Skip()
				}
				return err
			}); err != nil {
				return err
			}
			if c.ID <= 0 || c.Name == "" {
				return errors.Errorf("category %d: id and name are required", len(categories))
			}

			for i := range items {
				items[i].CategoryID = c.ID
				items[i].CategoryName = c.Name
			}
			categories = append(categories, c)
			products = append(products, items...)
			return nil
		})
	})
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[int64]struct{}, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			return nil, nil, errors.Errorf("duplicate product id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return categories, products, nil
}

func parseProducts(d *jx.Decoder) ([]product.Product, error) {
	var out []product.Product
	err := d.Arr(func(d *jx.Decoder) error {
		var p product.Product
		if err := d.Obj(func(d *jx.Decoder, key string) (err error) {
			switch key {
			case "id":
				p.ID, err = d.Int64()
			case "name":
				p.Name, err = d.Str()
			case "description":
				p.Description, err = d.Str()
			case "price":
				var n jx.Num
				if n, err = d.Num(); err != nil {
					return err
				}
				p.Price, err = decimal.NewFromString(string(n))
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		if p.ID <= 0 || p.Name == "" {
			return errors.Errorf("product %q: id and name are required", p.Name)
		}
		if p.Price.IsNegative() {
			return errors.Errorf("product %d: negative price", p.ID)
		}
		out = append(out, p)
		return nil
	})
	return out, err
}
