package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type listResponse[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

func newListResponse[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Count: len(items), Results: items}
}

func listBrandsHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		brands, err := svc.ListBrands(c.Request.Context())
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, newListResponse(brands))
	}
}

func getBrandHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		brand, err := svc.GetBrand(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, brand)
	}
}

func listBrandProductsHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.ListBrandProducts(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, newListResponse(products))
	}
}

func listMaterialsHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		materials, err := svc.ListMaterials(c.Request.Context())
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, newListResponse(materials))
	}
}

func getMaterialHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		material, err := svc.GetMaterial(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, material)
	}
}

func getProductHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func listProductColorsHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		groups, err := svc.ListColorGroups(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, newListResponse(groups))
	}
}

func listProductPropertiesHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		props, err := svc.ListProperties(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, newListResponse(props))
	}
}
