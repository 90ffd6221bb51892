// Package http provides optional HTTP adapters for the builder admin APIs.
//
// Routes mount under /admin/api:
//   - Sites: /sites, /sites/{id}, /sites/{id}/publish, /sites/generate
//   - Pages: /sites/{id}/pages, /sites/{id}/pages/sort, /pages/{id},
//     /pages/{id}/default
//   - Sections: /pages/{id}/sections, /sections/{id}, /sections/sort,
//     /sections/types, /sections/{id}/duplicate, /sections/{id}/generate
//   - Section items: /sections/{id}/items, /sections/{id}/items/sort,
//     /items/{id}
//   - Plans: /plans, /plans/{id}, /plans/sort, /plans/{id}/features/{code}
//
// Host applications can register handlers on their own mux/router as needed.
package http
