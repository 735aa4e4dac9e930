package api

// Calculator is one entry of the calculator catalog.
type Calculator struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Catalog lists the calculators the front end may offer. Only beams are
// served by this backend; the rest are placeholders for future routes.
var Catalog = []Calculator{
	{Slug: "beams", Name: "Beam Calculator", Available: true},
	{Slug: "footing", Name: "Footing Calculator"},
	{Slug: "slab", Name: "Slab Calculator"},
	{Slug: "retaining-wall", Name: "Retaining Wall Calculator"},
	{Slug: "column", Name: "Column Calculator"},
}
