package dto

type IdentityItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type IdentityCreateRequest struct {
	Name string `json:"name"`
}

type IdentityListRequest struct {
	Items []IdentityItem `json:"items"`
}

type IdentityListResponse struct {
	Items []IdentityItem `json:"items"`
}
