package fixtures

import (
	_ "embed"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed catalogue.yaml
var catalogueYAML []byte

// Load parses and validates the embedded catalogue. Validation is structural
// only (required fields, enum values); referential integrity between records
// is the builders' concern.
func Load() (*Catalogue, error) {
	return Parse(catalogueYAML)
}

// Parse is Load for caller-supplied YAML; tests feed it small catalogues.
func Parse(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "parsing fixture catalogue")
	}
	v := validator.New()
	if err := v.Struct(&c); err != nil {
		return nil, errors.Wrap(err, "validating fixture catalogue")
	}
	return &c, nil
}

// Tenant returns the tenant definition for a base (unqualified) slug.
func (c *Catalogue) Tenant(slug string) *TenantDef {
	for i := range c.Tenants {
		if c.Tenants[i].Slug == slug {
			return &c.Tenants[i]
		}
	}
	return nil
}

// Shopper returns the shopper definition for a base email.
func (c *Catalogue) Shopper(email string) *ShopperDef {
	for i := range c.Shoppers {
		if c.Shoppers[i].Email == email {
			return &c.Shoppers[i]
		}
	}
	return nil
}
