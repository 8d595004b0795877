package types

// Request schemas. Field constraints live in validate tags; the custom
// "slug" rule is registered in internal/api/validators.

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,max=120"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SearchQuery is the shared pagination/sort schema. The sort field is
// restricted to a fixed allow-list.
type SearchQuery struct {
	Page      int    `json:"page" validate:"omitempty,gte=1"`
	Limit     int    `json:"limit" validate:"omitempty,gte=1,lte=100"`
	SortBy    string `json:"sortBy" validate:"omitempty,oneof=name slug sortOrder sort_order createdAt created_at updatedAt updated_at"`
	SortOrder string `json:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Search    string `json:"search" validate:"omitempty,max=200"`
}

type ReorderItem struct {
	ID        string `json:"id" validate:"required,uuid4"`
	SortOrder int    `json:"sortOrder" validate:"gte=0"`
}

// --- Products ---

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Slug        string `json:"slug" validate:"required,slug,max=120"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	SortOrder   int    `json:"sortOrder" validate:"gte=0"`
	IsActive    *bool  `json:"isActive"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Slug        *string `json:"slug" validate:"omitempty,slug,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	SortOrder   *int    `json:"sortOrder" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive"`
}

type ProductReorderRequest struct {
	Products []ReorderItem `json:"products" validate:"required,min=1,dive"`
}

// --- Categories ---

type CreateCategoryRequest struct {
	ProductID   string `json:"productId" validate:"required,uuid4"`
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Slug        string `json:"slug" validate:"required,slug,max=120"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	IconName    string `json:"iconName" validate:"omitempty,max=64"`
	SortOrder   int    `json:"sortOrder" validate:"gte=0"`
	IsActive    *bool  `json:"isActive"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Slug        *string `json:"slug" validate:"omitempty,slug,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	IconName    *string `json:"iconName" validate:"omitempty,max=64"`
	SortOrder   *int    `json:"sortOrder" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive"`
}

type CategoryReorderRequest struct {
	ProductID  string        `json:"productId" validate:"required,uuid4"`
	Categories []ReorderItem `json:"categories" validate:"required,min=1,dive"`
}

type CategoryCheckSlugRequest struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
	Slug      string `json:"slug" validate:"required,slug,max=120"`
	ExcludeID string `json:"excludeId" validate:"omitempty,uuid4"`
}

type CategoryBatchRequest struct {
	Operation       string                 `json:"operation" validate:"required,oneof=activate deactivate delete update move"`
	CategoryIDs     []string               `json:"categoryIds" validate:"required,min=1,dive,uuid4"`
	Data            *UpdateCategoryRequest `json:"data"`
	TargetProductID string                 `json:"targetProductId" validate:"omitempty,uuid4"`
}

// --- Subcategories ---

type CreateSubcategoryRequest struct {
	CategoryID  string `json:"categoryId" validate:"required,uuid4"`
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Slug        string `json:"slug" validate:"required,slug,max=120"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	SortOrder   int    `json:"sortOrder" validate:"gte=0"`
	IsActive    *bool  `json:"isActive"`
}

type UpdateSubcategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Slug        *string `json:"slug" validate:"omitempty,slug,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	SortOrder   *int    `json:"sortOrder" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive"`
}

type SubcategoryReorderRequest struct {
	CategoryID    string        `json:"categoryId" validate:"required,uuid4"`
	Subcategories []ReorderItem `json:"subcategories" validate:"required,min=1,dive"`
}

type SubcategoryCheckSlugRequest struct {
	CategoryID string `json:"categoryId" validate:"required,uuid4"`
	Slug       string `json:"slug" validate:"required,slug,max=120"`
	ExcludeID  string `json:"excludeId" validate:"omitempty,uuid4"`
}

type SubcategoryBatchRequest struct {
	Operation        string                    `json:"operation" validate:"required,oneof=activate deactivate delete update move"`
	SubcategoryIDs   []string                  `json:"subcategoryIds" validate:"required,min=1,dive,uuid4"`
	Data             *UpdateSubcategoryRequest `json:"data"`
	TargetCategoryID string                    `json:"targetCategoryId" validate:"omitempty,uuid4"`
}

// --- Components ---

type CreateComponentRequest struct {
	SubcategoryID string   `json:"subcategoryId" validate:"required,uuid4"`
	Name          string   `json:"name" validate:"required,min=1,max=160"`
	Slug          string   `json:"slug" validate:"required,slug,max=160"`
	Description   string   `json:"description" validate:"omitempty,max=5000"`
	IsFree        bool     `json:"isFree"`
	RequiredTier  string   `json:"requiredTier" validate:"omitempty,oneof=free pro team enterprise"`
	AccessType    string   `json:"accessType" validate:"omitempty,oneof=full_access preview_only"`
	Status        string   `json:"status" validate:"omitempty,oneof=draft published archived deprecated"`
	IsFeatured    bool     `json:"isFeatured"`
	IsNew         bool     `json:"isNew"`
	Tags          []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=40"`
	SortOrder     int      `json:"sortOrder" validate:"gte=0"`
}

type UpdateComponentRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=160"`
	Slug         *string  `json:"slug" validate:"omitempty,slug,max=160"`
	Description  *string  `json:"description" validate:"omitempty,max=5000"`
	IsFree       *bool    `json:"isFree"`
	RequiredTier *string  `json:"requiredTier" validate:"omitempty,oneof=free pro team enterprise"`
	AccessType   *string  `json:"accessType" validate:"omitempty,oneof=full_access preview_only"`
	Status       *string  `json:"status" validate:"omitempty,oneof=draft published archived deprecated"`
	IsFeatured   *bool    `json:"isFeatured"`
	IsNew        *bool    `json:"isNew"`
	Tags         []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=40"`
	SortOrder    *int     `json:"sortOrder" validate:"omitempty,gte=0"`
	IsActive     *bool    `json:"isActive"`
}

type ComponentReorderRequest struct {
	SubcategoryID string        `json:"subcategoryId" validate:"required,uuid4"`
	Components    []ReorderItem `json:"components" validate:"required,min=1,dive"`
}

type ComponentCheckSlugRequest struct {
	SubcategoryID string `json:"subcategoryId" validate:"required,uuid4"`
	Slug          string `json:"slug" validate:"required,slug,max=160"`
	ExcludeID     string `json:"excludeId" validate:"omitempty,uuid4"`
}

type ComponentBatchRequest struct {
	Operation           string                  `json:"operation" validate:"required,oneof=activate deactivate delete update move"`
	ComponentIDs        []string                `json:"componentIds" validate:"required,min=1,dive,uuid4"`
	Data                *UpdateComponentRequest `json:"data"`
	TargetSubcategoryID string                  `json:"targetSubcategoryId" validate:"omitempty,uuid4"`
}

// --- Versions ---

type CreateVersionRequest struct {
	Framework     string         `json:"framework" validate:"required,min=1,max=32"`
	CSSFramework  string         `json:"cssFramework" validate:"required,min=1,max=32"`
	VersionNumber string         `json:"versionNumber" validate:"required,min=1,max=32"`
	CodePreview   string         `json:"codePreview" validate:"omitempty"`
	CodeFull      string         `json:"codeFull" validate:"omitempty"`
	Dependencies  map[string]any `json:"dependencies"`
	Integrations  map[string]any `json:"integrations"`
	IsDefault     bool           `json:"isDefault"`
}

// --- Licenses ---

type CheckoutRequest struct {
	Tier  string `json:"tier" validate:"required,oneof=pro team enterprise"`
	Seats int    `json:"seats" validate:"omitempty,gte=1,lte=500"`
}
