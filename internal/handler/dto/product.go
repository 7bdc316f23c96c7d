package dto

import "github.com/stockroom/stockroom/internal/model"

// ProductData wraps a single product for the {data:{product:{...}}} shape.
type ProductData struct {
	Product *model.Product `json:"product"`
}

// ProductListData is the paginated listing payload. The product array sits
// under data.data next to the page metadata.
type ProductListData struct {
	Data        []*model.Product `json:"data"`
	CurrentPage int              `json:"current_page"`
	PerPage     int              `json:"per_page"`
	Total       int64            `json:"total"`
}
